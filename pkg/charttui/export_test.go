package charttui

var RenderHalfBlocks = renderHalfBlocks

const HalfBlock = halfBlock

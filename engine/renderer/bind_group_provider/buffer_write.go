package bind_group_provider

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Empty reports whether the write carries no data or no target provider.
// Empty writes are skipped by the renderer.
//
// Returns:
//   - bool: true if there is nothing to write
func (bw BufferWrite) Empty() bool {
	return bw.Provider == nil || len(bw.Data) == 0
}

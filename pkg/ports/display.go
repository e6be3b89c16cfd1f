package ports

// DisplaySink receives frame payloads for presentation.
type DisplaySink interface {
	// Present hands one frame to the display together with the stream
	// dimensions. It is fire and forget: the playback engine keeps its
	// pacing regardless of what the sink does with the bytes. The
	// payload is only valid for the duration of the call; sinks that
	// keep it must copy.
	Present(frame []byte, width, height uint32)
}

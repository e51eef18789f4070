package server

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/dmoreno/invitado/internal/preview"
)

// handlePreviewStream serves preview events over SSE. Each message keeps the
// serialized UPDATE_CONFIG / SIMULATE_RSVP contract, so a sandboxed preview
// frame consumes the same payloads the editor has always emitted.
func (s *Server) handlePreviewStream(c *gin.Context) {
	ch, cancel := s.bus.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Seed the frame with the current full configuration.
	initial := preview.Message{Type: preview.TypeUpdateConfig, Config: s.store.RawState()}
	writeEvent(c.Writer, initial)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

func writeEvent(w io.Writer, msg preview.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	io.WriteString(w, "data: ")
	w.Write(data)
	io.WriteString(w, "\n\n")
}

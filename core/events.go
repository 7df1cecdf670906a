package core

import "fmt"

// Inbound socket event payloads. Socket.io hands callbacks untyped data, so
// each payload has a Decode helper that validates shape at the boundary
// before anything reaches the room registry.

type (
	// JoinRequest asks to enter a room, creating it on first use. Password
	// and Private only matter for the join that creates the room.
	JoinRequest struct {
		Room     string `json:"room"`
		Password string `json:"password"`
		Private  bool   `json:"private"`
	}

	// TextUpdate replaces the room's whole document. Last writer wins.
	TextUpdate struct {
		Text string `json:"text"`
	}

	// FileUploaded notifies the server that the HTTP upload leg finished and
	// the object named Filename is durably stored.
	FileUploaded struct {
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
		Room         string `json:"room"`
	}
)

func asObject(data any) (map[string]any, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("payload must be an object, got %T", data)
	}
	return m, nil
}

// DecodeJoinRequest validates an untyped join payload.
func DecodeJoinRequest(data any) (JoinRequest, error) {
	m, err := asObject(data)
	if err != nil {
		return JoinRequest{}, err
	}
	room, ok := m["room"].(string)
	if !ok || room == "" {
		return JoinRequest{}, fmt.Errorf("join payload missing room name")
	}
	req := JoinRequest{Room: room}
	req.Password, _ = m["password"].(string)
	req.Private, _ = m["private"].(bool)
	return req, nil
}

// DecodeTextUpdate validates an untyped text payload. An empty document is
// a valid update; a missing or non-string text field is not.
func DecodeTextUpdate(data any) (TextUpdate, error) {
	m, err := asObject(data)
	if err != nil {
		return TextUpdate{}, err
	}
	raw, ok := m["text"]
	if !ok {
		return TextUpdate{}, fmt.Errorf("text payload missing text field")
	}
	text, ok := raw.(string)
	if !ok {
		return TextUpdate{}, fmt.Errorf("text field must be a string, got %T", raw)
	}
	return TextUpdate{Text: text}, nil
}

// DecodeFileUploaded validates an untyped file-uploaded payload.
func DecodeFileUploaded(data any) (FileUploaded, error) {
	m, err := asObject(data)
	if err != nil {
		return FileUploaded{}, err
	}
	ev := FileUploaded{}
	var ok bool
	if ev.Filename, ok = m["filename"].(string); !ok || ev.Filename == "" {
		return FileUploaded{}, fmt.Errorf("file-uploaded payload missing filename")
	}
	if ev.Room, ok = m["room"].(string); !ok || ev.Room == "" {
		return FileUploaded{}, fmt.Errorf("file-uploaded payload missing room")
	}
	ev.OriginalName, _ = m["originalName"].(string)
	if ev.OriginalName == "" {
		ev.OriginalName = ev.Filename
	}
	return ev, nil
}

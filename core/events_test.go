package core

import "testing"

func TestDecodeJoinRequest_Valid(t *testing.T) {
	req, err := DecodeJoinRequest(map[string]any{
		"room":     "demo",
		"password": "x",
		"private":  true,
	})
	if err != nil {
		t.Fatalf("DecodeJoinRequest() failed: %v", err)
	}
	if req.Room != "demo" {
		t.Errorf("room mismatch: got %q, want %q", req.Room, "demo")
	}
	if req.Password != "x" {
		t.Errorf("password mismatch: got %q, want %q", req.Password, "x")
	}
	if !req.Private {
		t.Error("private flag should be set")
	}
}

func TestDecodeJoinRequest_OptionalFieldsDefault(t *testing.T) {
	req, err := DecodeJoinRequest(map[string]any{"room": "world"})
	if err != nil {
		t.Fatalf("DecodeJoinRequest() failed: %v", err)
	}
	if req.Password != "" {
		t.Errorf("password should default empty, got %q", req.Password)
	}
	if req.Private {
		t.Error("private should default false")
	}
}

func TestDecodeJoinRequest_NotAnObject(t *testing.T) {
	for _, data := range []any{nil, "demo", 42, []any{"demo"}} {
		if _, err := DecodeJoinRequest(data); err == nil {
			t.Errorf("DecodeJoinRequest(%#v) should fail", data)
		}
	}
}

func TestDecodeJoinRequest_MissingRoom(t *testing.T) {
	if _, err := DecodeJoinRequest(map[string]any{"password": "x"}); err == nil {
		t.Error("DecodeJoinRequest() should fail without a room name")
	}
	if _, err := DecodeJoinRequest(map[string]any{"room": ""}); err == nil {
		t.Error("DecodeJoinRequest() should fail on an empty room name")
	}
	if _, err := DecodeJoinRequest(map[string]any{"room": 7}); err == nil {
		t.Error("DecodeJoinRequest() should fail on a non-string room name")
	}
}

func TestDecodeTextUpdate_Valid(t *testing.T) {
	upd, err := DecodeTextUpdate(map[string]any{"text": "hello", "user": "You"})
	if err != nil {
		t.Fatalf("DecodeTextUpdate() failed: %v", err)
	}
	if upd.Text != "hello" {
		t.Errorf("text mismatch: got %q, want %q", upd.Text, "hello")
	}
}

func TestDecodeTextUpdate_EmptyDocumentAllowed(t *testing.T) {
	upd, err := DecodeTextUpdate(map[string]any{"text": ""})
	if err != nil {
		t.Fatalf("an empty document is a valid update, got %v", err)
	}
	if upd.Text != "" {
		t.Errorf("text mismatch: got %q, want empty", upd.Text)
	}
}

func TestDecodeTextUpdate_Malformed(t *testing.T) {
	if _, err := DecodeTextUpdate("hello"); err == nil {
		t.Error("DecodeTextUpdate() should fail on a bare string")
	}
	if _, err := DecodeTextUpdate(map[string]any{"user": "You"}); err == nil {
		t.Error("DecodeTextUpdate() should fail without a text field")
	}
	if _, err := DecodeTextUpdate(map[string]any{"text": 42}); err == nil {
		t.Error("DecodeTextUpdate() should fail on a non-string text field")
	}
}

func TestDecodeFileUploaded_Valid(t *testing.T) {
	ev, err := DecodeFileUploaded(map[string]any{
		"filename":     "01H-report.pdf",
		"originalName": "report.pdf",
		"room":         "demo",
	})
	if err != nil {
		t.Fatalf("DecodeFileUploaded() failed: %v", err)
	}
	if ev.Filename != "01H-report.pdf" {
		t.Errorf("filename mismatch: got %q", ev.Filename)
	}
	if ev.OriginalName != "report.pdf" {
		t.Errorf("originalName mismatch: got %q", ev.OriginalName)
	}
	if ev.Room != "demo" {
		t.Errorf("room mismatch: got %q", ev.Room)
	}
}

func TestDecodeFileUploaded_OriginalNameFallsBackToFilename(t *testing.T) {
	ev, err := DecodeFileUploaded(map[string]any{
		"filename": "01H-report.pdf",
		"room":     "demo",
	})
	if err != nil {
		t.Fatalf("DecodeFileUploaded() failed: %v", err)
	}
	if ev.OriginalName != "01H-report.pdf" {
		t.Errorf("missing originalName should fall back to filename, got %q", ev.OriginalName)
	}
}

func TestDecodeFileUploaded_Malformed(t *testing.T) {
	if _, err := DecodeFileUploaded(nil); err == nil {
		t.Error("DecodeFileUploaded() should fail on nil data")
	}
	if _, err := DecodeFileUploaded(map[string]any{"room": "demo"}); err == nil {
		t.Error("DecodeFileUploaded() should fail without a filename")
	}
	if _, err := DecodeFileUploaded(map[string]any{"filename": "k1"}); err == nil {
		t.Error("DecodeFileUploaded() should fail without a room")
	}
	if _, err := DecodeFileUploaded(map[string]any{"filename": "", "room": "demo"}); err == nil {
		t.Error("DecodeFileUploaded() should fail on an empty filename")
	}
}

package upload

import (
	"io"
	"net/http"
	"path/filepath"

	"roomdrop/core"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Response is the JSON body for POST /upload. Filename is the storage key
// the client echoes back over the socket so the room registry can announce
// the file; OriginalName is the display name.
type Response struct {
	Success      bool   `json:"success"`
	Filename     string `json:"filename,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	Message      string `json:"message,omitempty"`
}

// Multipart memory threshold; larger files spill to temp files.
const maxMemory = 32 << 20

// HandleUpload stores the multipart "file" part and returns its storage
// key. Registration into a room happens afterwards, over the socket, once
// the client confirms which room the file belongs to.
func HandleUpload(store core.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Response{Success: false, Message: err.Error()})
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Response{Success: false, Message: "No file uploaded."})
			return
		}
		defer file.Close()

		// Strip any client-supplied directory components.
		name := filepath.Base(header.Filename)
		key := ulid.Make().String() + "-" + name
		log := logrus.WithFields(logrus.Fields{
			"key":  key,
			"name": name,
			"size": header.Size,
		})

		if err := store.Save(r.Context(), key, name, file); err != nil {
			log.WithError(err).Error("Failed to store upload")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, Response{Success: false, Message: "Failed to store file."})
			return
		}

		log.Info("Upload stored")
		render.JSON(w, r, Response{Success: true, Filename: key, OriginalName: name})
	}
}

// HandleServe streams a previously uploaded object back by storage key.
func HandleServe(store core.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if key == "" {
			http.NotFound(w, r)
			return
		}

		obj, err := store.Open(r.Context(), key)
		if err != nil {
			logrus.WithField("key", key).WithError(err).Warn("Requested object not available")
			http.NotFound(w, r)
			return
		}
		defer obj.Close()

		if _, err := io.Copy(w, obj); err != nil {
			logrus.WithField("key", key).WithError(err).Warn("Failed to stream object")
		}
	}
}

package websocket

import (
	"roomdrop/core"
	"roomdrop/rooms"

	"github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"
)

// socketEmitter delivers hub events to a single connection by addressing
// the private room socket.io assigns to every socket id. Socket.io writes
// are buffered per connection, so a slow member never blocks the hub.
type socketEmitter struct {
	io *socketio.Server
}

func (e *socketEmitter) Emit(connID string, event string, payload any) {
	if payload == nil {
		e.io.To(socketio.Room(connID)).Emit(event)
		return
	}
	e.io.To(socketio.Room(connID)).Emit(event, payload)
}

// Setup builds the socket.io server with a hub wired to it, translating
// the wire events (join, text, typing, file-uploaded) into hub calls.
// Payloads are validated here, at the boundary; malformed events are logged
// and dropped without reaching the registry.
func Setup(registry *rooms.Registry) *socketio.Server {
	opts := socketio.DefaultServerOptions()
	opts.SetMaxHttpBufferSize(1000000)
	opts.SetPath("/socket.io")
	opts.SetAllowEIO3(true)
	opts.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})
	ioo := socketio.NewServer(nil, opts)
	hub := rooms.NewHub(registry, &socketEmitter{io: ioo})

	ioo.On("connection", func(clients ...any) {
		socket := clients[0].(*socketio.Socket)
		connID := string(socket.Id())
		log := logrus.WithField("conn_id", connID)
		log.Debug("Connection established")

		socket.On("join", func(datas ...any) {
			req, err := core.DecodeJoinRequest(first(datas))
			if err != nil {
				log.WithError(err).Warn("Malformed join payload, dropped")
				return
			}
			// Unauthorized joins already emitted their verdict inside the hub.
			_ = hub.Join(connID, req)
		})

		socket.On("text", func(datas ...any) {
			upd, err := core.DecodeTextUpdate(first(datas))
			if err != nil {
				log.WithError(err).Warn("Malformed text payload, dropped")
				return
			}
			hub.UpdateText(connID, upd.Text)
		})

		socket.On("typing", func(datas ...any) {
			user, ok := first(datas).(string)
			if !ok {
				return
			}
			hub.Typing(connID, user)
		})

		socket.On("file-uploaded", func(datas ...any) {
			ev, err := core.DecodeFileUploaded(first(datas))
			if err != nil {
				log.WithError(err).Warn("Malformed file-uploaded payload, dropped")
				return
			}
			// Unknown rooms are dropped inside the hub, by design.
			_ = hub.RegisterUpload(ev.Room, ev.Filename, ev.OriginalName)
		})

		socket.On("disconnect", func(datas ...any) {
			hub.Disconnect(connID)
			log.Debug("Connection closed")
		})
	})

	return ioo
}

func first(datas []any) any {
	if len(datas) == 0 {
		return nil
	}
	return datas[0]
}

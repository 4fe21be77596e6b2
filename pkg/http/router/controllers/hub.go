package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/Mazex/pkg/concurrent"
	"github.com/lintang-b-s/Mazex/pkg/engine"
	"go.uber.org/zap"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*generateMazeRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &generateMazeRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

/*
GenerateMaze reads one generate request from the connection and answers with a
{"progress": ...} message for every generation phase followed by the finished maze
under "data", or an "error" envelope.
*/
func (u *User) GenerateMaze(ctx context.Context) error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateStruct(req); err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}

	var writeErr error
	listener := func(ev engine.PhaseEvent) {
		if writeErr != nil {
			return
		}
		writeErr = u.write(envelope{"progress": progressMessage{
			Phase:        string(ev.Phase),
			Regeneration: ev.Regeneration,
			PruneAttempt: ev.PruneAttempt,
			Detail:       ev.Detail,
		}})
	}

	m, err := u.hub.mazeService.GenerateWithProgress(ctx, req.toParams(), listener)
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		u.hub.log.Info("websocket generate failed", zap.Uint("user", u.id), zap.Error(err))
		return u.writeError(http.StatusUnprocessableEntity, err.Error())
	}

	return u.write(envelope{"data": NewMazeResponse(m)})
}

func (u *User) writeError(status int, message string) error {
	return u.write(envelope{"error": map[string]string{
		"code":    http.StatusText(status),
		"message": message,
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu          sync.RWMutex
	seq         uint
	us          []*User
	ns          map[uint]*User
	mazeService MazeService
	log         *zap.Logger

	pool *concurrent.WorkerPool[int, int]
}

func NewHub(pool *concurrent.WorkerPool[int, int], mazeService MazeService, log *zap.Logger) *Hub {
	hub := &Hub{
		pool:        pool,
		ns:          make(map[uint]*User),
		us:          make([]*User, 0),
		mazeService: mazeService,
		log:         log,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
		user.conn.Close()
	}
}

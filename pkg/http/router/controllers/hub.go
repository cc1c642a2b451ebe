package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/frustration-ig/pkg/ig"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

// readRequest. returns nil, nil after a control frame.
func (u *User) readRequest() (*clusterRequest, error) {
	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		u.io.Lock()
		defer u.io.Unlock()
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	req := newClusterRequest()
	if err := json.Unmarshal(payload, &req); err != nil {
		return &req, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return &req, nil
}

var errInvalidPayload = errors.New("invalid cluster request")

// Serve. answer cluster requests until the client closes the connection or ctx is done.
func (u *User) Serve(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		req, err := u.readRequest()
		var closed wsutil.ClosedError
		switch {
		case errors.As(err, &closed):
			return nil
		case errors.Is(err, errInvalidPayload):
			if err := u.writeError(http.StatusBadRequest, err.Error()); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}
		if req == nil {
			continue
		}
		if err := u.Cluster(ctx, req); err != nil {
			return err
		}
	}
}

/*
Cluster. run one request, streaming iteration reports. returns only connection errors. the first failed write
cancels the search, a hijacked connection is not watched by the request context.
*/
func (u *User) Cluster(ctx context.Context, req *clusterRequest) error {
	if msgs := util.ValidateStruct(*req); len(msgs) > 0 {
		return u.writeError(http.StatusBadRequest, "validation error: "+util.JoinMessages(msgs))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var writeErr error
	hook := func(report ig.IterationReport) {
		if writeErr != nil {
			return
		}
		writeErr = u.write(envelope{"iteration": NewIterationResponse(report)})
		if writeErr != nil {
			cancel()
		}
	}

	res, err := u.hub.clusteringService.Cluster(ctx, req.toClusteringRequest(), hook)
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		var ierr *util.Error
		if errors.As(err, &ierr) && ierr.Code() != util.ErrInternalServerError {
			return u.writeError(http.StatusBadRequest, err.Error())
		}
		return u.writeError(http.StatusInternalServerError, util.MessageInternalServerError)
	}
	return u.write(envelope{"data": NewClusterResponse(res)})
}

func (u *User) writeError(status int, message string) error {
	return u.write(newErrorResponse(status, message))
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

// Hub. open websocket connections.
type Hub struct {
	mu  sync.RWMutex
	seq uint
	us  []*User
	ns  map[uint]*User

	clusteringService ClusteringService
}

func NewHub(clusteringService ClusteringService) *Hub {
	return &Hub{
		ns:                make(map[uint]*User),
		us:                make([]*User, 0),
		clusteringService: clusteringService,
	}
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

// Remove. close the connection of user and forget it. removing twice is a no-op.
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
	h.us = append(h.us[:i], h.us[i+1:]...)

	user.conn.Close()
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}

func (h *Hub) NumberOfUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}

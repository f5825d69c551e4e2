package postgres

import (
	"net"
	"sync"
	"time"
)

// readTimeoutConn bounds every Read by timeout unless the caller has set
// its own read deadline. pgconn sets deadlines to interrupt reads on
// context cancellation; those must win.
type readTimeoutConn struct {
	net.Conn
	timeout time.Duration

	mu       sync.Mutex
	explicit time.Time
}

func newReadTimeoutConn(c net.Conn, timeout time.Duration) *readTimeoutConn {
	return &readTimeoutConn{Conn: c, timeout: timeout}
}

func (c *readTimeoutConn) Read(b []byte) (int, error) {
	c.mu.Lock()
	if c.explicit.IsZero() {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			c.mu.Unlock()
			return 0, err
		}
	}
	c.mu.Unlock()
	return c.Conn.Read(b)
}

func (c *readTimeoutConn) SetDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.explicit = t
	return c.Conn.SetDeadline(t)
}

func (c *readTimeoutConn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.explicit = t
	return c.Conn.SetReadDeadline(t)
}

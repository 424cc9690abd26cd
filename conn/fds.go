package conn

import (
	"net"
	"sync"

	"golang.org/x/sys/unix"
)

// FdQueue buffers file descriptors received via SCM_RIGHTS ancillary
// data, in the order the kernel delivered them. A frame's header.NFds
// tells the caller how many to Take off the front once that frame's
// payload has been decoded, matching the positional index an Fd pod
// carries: ancillary fds are captured at frame boundaries, and turning
// a positional index into a usable handle is the caller's
// responsibility.
type FdQueue struct {
	mu  sync.Mutex
	fds []int
}

// Push appends newly received fds to the tail of the queue.
func (q *FdQueue) Push(fds []int) {
	if len(fds) == 0 {
		return
	}
	q.mu.Lock()
	q.fds = append(q.fds, fds...)
	q.mu.Unlock()
}

// Take removes and returns up to n fds from the front of the queue.
// Fewer than n are returned if the queue is short; callers asking for
// more fds than have arrived get whatever is currently available.
func (q *FdQueue) Take(n int) []int {
	if n <= 0 {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if n > len(q.fds) {
		n = len(q.fds)
	}
	out := append([]int(nil), q.fds[:n]...)
	q.fds = q.fds[n:]
	return out
}

// UnixReader wraps a Unix domain socket and extracts SCM_RIGHTS
// ancillary file descriptors out of the out-of-band data accompanying
// each read, pushing them onto Fds as they arrive.
type UnixReader struct {
	Conn *net.UnixConn
	Fds  *FdQueue

	oob [unix.CmsgSpace(64 * 4)]byte
}

// NewUnixReader returns a reader over conn that captures ancillary fds
// into a fresh FdQueue.
func NewUnixReader(conn *net.UnixConn) *UnixReader {
	return &UnixReader{Conn: conn, Fds: &FdQueue{}}
}

// Read implements io.Reader, satisfying frame.ReadFrame's io.ReadFull
// calls while siphoning any SCM_RIGHTS control messages into Fds.
func (r *UnixReader) Read(p []byte) (int, error) {
	n, oobn, _, _, err := r.Conn.ReadMsgUnix(p, r.oob[:])
	if oobn > 0 {
		if fds := parseRights(r.oob[:oobn]); len(fds) > 0 {
			r.Fds.Push(fds)
		}
	}
	return n, err
}

func parseRights(oob []byte) []int {
	messages, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil
	}
	var fds []int
	for _, msg := range messages {
		rights, err := unix.ParseUnixRights(&msg)
		if err != nil {
			continue
		}
		fds = append(fds, rights...)
	}
	return fds
}

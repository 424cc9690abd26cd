// Package conn establishes a PipeWire connection over an
// already-connected stream socket: it splits the socket into a
// lock-guarded Writer and a single background Reader, synthesizes the
// two implicit proxies (Core id=0, Client id=1), and sends the initial
// Hello handshake.
package conn

import (
	"fmt"
	"io"
	"log"
	"net"

	"github.com/google/uuid"

	"pipewire-go-client/pod"
	"pipewire-go-client/proto"
	"pipewire-go-client/proxy"
)

// Conn bundles everything a caller needs after establishment: the
// shared writer, the proxy registry, and the two reserved proxies.
type Conn struct {
	ID       string
	Writer   *Writer
	Registry *proxy.Registry
	Core     *proxy.Proxy
	Client   *proxy.Proxy

	closer io.Closer
	fds    *FdQueue
}

// Establish wires a connection around an already-connected duplex
// stream. If rw also implements io.Closer, Close shuts it down.
func Establish(rw io.ReadWriter, logger *log.Logger) (*Conn, error) {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()

	registry := proxy.NewRegistry()
	writer := NewWriter(rw)

	core := registry.BindCore(proxy.CoreDecoder)
	client := registry.BindClient(proxy.ClientDecoder)
	core.Attach(writer)
	client.Attach(writer)

	connLogger := log.New(logger.Writer(), fmt.Sprintf("[conn %s] ", id[:8]), logger.Flags())
	reader := NewReader(rw, registry, connLogger)
	go reader.Run()

	c := &Conn{
		ID:       id,
		Writer:   writer,
		Registry: registry,
		Core:     core,
		Client:   client,
	}
	if closer, ok := rw.(io.Closer); ok {
		c.closer = closer
	}

	if err := c.hello(); err != nil {
		return nil, err
	}
	return c, nil
}

// EstablishUnix is Establish specialized for a real Unix domain socket:
// the read half captures SCM_RIGHTS ancillary file descriptors into
// Conn.Fds as they arrive alongside frames.
func EstablishUnix(conn *net.UnixConn, logger *log.Logger) (*Conn, error) {
	ur := NewUnixReader(conn)
	c, err := Establish(&unixDuplex{UnixReader: ur, w: conn}, logger)
	if err != nil {
		return nil, err
	}
	c.closer = conn
	c.fds = ur.Fds
	return c, nil
}

// Fds returns the ancillary fd queue for a connection established with
// EstablishUnix, or nil for a connection established over a plain
// io.ReadWriter (e.g. net.Pipe() in tests).
func (c *Conn) Fds() *FdQueue { return c.fds }

// hello sends Core.Hello as the connection's first outbound method,
// per the mandated handshake.
func (c *Conn) hello() error {
	payload, err := pod.Encode(proto.HelloMethod{Version: proto.ProtocolVersion}.Encode())
	if err != nil {
		return fmt.Errorf("conn: encode hello: %w", err)
	}
	if err := c.Writer.CallMethod(proto.CoreObjectID, proto.CoreMethodHello, payload); err != nil {
		return fmt.Errorf("conn: send hello: %w", err)
	}
	return nil
}

// Close releases the underlying transport, if the connection was
// established over something closeable. Proxies already allocated
// keep their mailboxes; callers should Close each proxy they hold
// before (or after) closing the connection itself.
func (c *Conn) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// unixDuplex adapts a fd-capturing UnixReader and a plain net.Conn
// writer into the io.ReadWriter Establish expects.
type unixDuplex struct {
	*UnixReader
	w io.Writer
}

func (d *unixDuplex) Write(p []byte) (int, error) { return d.w.Write(p) }

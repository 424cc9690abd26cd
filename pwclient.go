// Package pwclient is the public façade over the connection, proxy,
// and protocol packages: dial a socket, obtain the registry, bind
// globals, create objects, and wait on a sync barrier.
package pwclient

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"

	"pipewire-go-client/conn"
	"pipewire-go-client/env"
	"pipewire-go-client/perr"
	"pipewire-go-client/pod"
	"pipewire-go-client/proto"
	"pipewire-go-client/proxy"
)

// Client is a single established connection to a PipeWire server.
type Client struct {
	conn *conn.Conn
}

// Dial resolves the server socket path from the environment and
// establishes a connection over it, sending Hello as the first
// message.
func Dial(logger *log.Logger) (*Client, error) {
	path, err := env.SocketPath()
	if err != nil {
		return nil, err
	}
	return DialPath(path, logger)
}

// DialPath establishes a connection to an explicit socket path,
// bypassing environment resolution.
func DialPath(path string, logger *log.Logger) (*Client, error) {
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, fmt.Errorf("pwclient: resolve %s: %w", path, err)
	}
	uc, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("pwclient: dial %s: %w", path, err)
	}
	c, err := conn.EstablishUnix(uc, logger)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

// NewOver wraps an already-connected duplex stream (typically
// net.Pipe() in tests), skipping socket resolution entirely.
func NewOver(rw io.ReadWriter, logger *log.Logger) (*Client, error) {
	c, err := conn.Establish(rw, logger)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

// Core returns the implicit Core proxy (id 0).
func (c *Client) Core() *proxy.Proxy { return c.conn.Core }

// ClientProxy returns the implicit Client proxy (id 1).
func (c *Client) ClientProxy() *proxy.Proxy { return c.conn.Client }

// Close tears down the underlying transport.
func (c *Client) Close() error { return c.conn.Close() }

// Registry exposes the connection's proxy registry, for callers that
// need to inspect or manage proxy lifetime beyond what the proxy
// helpers above return (tests, diagnostics).
func (c *Client) Registry() *proxy.Registry { return c.conn.Registry }

// UpdateProperties replaces this client's property set server-side.
func (c *Client) UpdateProperties(props map[string]string) error {
	payload, err := pod.Encode(proto.UpdatePropertiesMethod{Props: props}.Encode())
	if err != nil {
		return fmt.Errorf("pwclient: encode update properties: %w", err)
	}
	return c.conn.Client.Call(proto.ClientMethodUpdateProps, payload)
}

// GetRegistry allocates a Registry proxy and asks the server to bind
// it, returning the new proxy immediately; Global/GlobalRemove events
// arrive asynchronously on its mailbox.
func (c *Client) GetRegistry() (*proxy.Proxy, error) {
	p := c.conn.Registry.Allocate(proto.KindRegistry, proxy.RegistryDecoder)
	p.Attach(c.conn.Writer)

	payload, err := pod.Encode(proto.GetRegistryMethod{
		Version: proto.RegistryInterfaceVersion,
		NewID:   p.ID(),
	}.Encode())
	if err != nil {
		return nil, fmt.Errorf("pwclient: encode get_registry: %w", err)
	}
	if err := c.conn.Core.Call(proto.CoreMethodGetRegistry, payload); err != nil {
		return nil, err
	}
	return p, nil
}

// Bind asks the server to bind a global announced by a Registry.Global
// event to a fresh local proxy of the given kind.
func (c *Client) Bind(registry *proxy.Proxy, globalID int32, objectType string, version int32, kind proto.Kind) (*proxy.Proxy, error) {
	p := c.conn.Registry.Allocate(kind, proxy.DecoderFor(kind))
	p.Attach(c.conn.Writer)

	payload, err := pod.Encode(proto.BindMethod{
		ID:         globalID,
		ObjectType: objectType,
		Version:    version,
		NewID:      p.ID(),
	}.Encode())
	if err != nil {
		return nil, fmt.Errorf("pwclient: encode bind: %w", err)
	}
	if err := registry.Call(proto.RegistryMethodBind, payload); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateObject asks the server to instantiate an object from a named
// factory, binding it to a fresh local proxy of the given kind.
func (c *Client) CreateObject(factoryName, objectType string, version int32, props map[string]string, kind proto.Kind) (*proxy.Proxy, error) {
	p := c.conn.Registry.Allocate(kind, proxy.DecoderFor(kind))
	p.Attach(c.conn.Writer)

	payload, err := pod.Encode(proto.CreateObjectMethod{
		FactoryName: factoryName,
		ObjectType:  objectType,
		Version:     version,
		Props:       props,
		NewID:       p.ID(),
	}.Encode())
	if err != nil {
		return nil, fmt.Errorf("pwclient: encode create_object: %w", err)
	}
	if err := c.conn.Core.Call(proto.CoreMethodCreateObject, payload); err != nil {
		return nil, err
	}
	return p, nil
}

// Sync issues Core.Sync on target's behalf and waits for the matching
// Done marker on target's own mailbox, racing it against ctx's
// deadline. The Sync method call itself is always addressed to Core
// (id 0, opcode CoreMethodSync): target's id travels only inside the
// payload, never as the frame's destination id, since Sync is a Core
// method regardless of which proxy is asking for the barrier. Any
// non-Done event observed while waiting is handed to onEvent (if
// non-nil) rather than silently dropped.
func Sync(ctx context.Context, core, target *proxy.Proxy, seq uint32, onEvent func(any)) error {
	payload, err := pod.Encode(proto.SyncMethod{ID: target.ID(), Seq: seq}.Encode())
	if err != nil {
		return fmt.Errorf("pwclient: encode sync: %w", err)
	}
	if err := core.Call(proto.CoreMethodSync, payload); err != nil {
		return err
	}
	return WaitDone(ctx, target, onEvent)
}

// WaitDone blocks until p's mailbox yields a Done marker or ctx is
// done, whichever comes first.
func WaitDone(ctx context.Context, p *proxy.Proxy, onEvent func(any)) error {
	for {
		select {
		case ev, ok := <-p.Events():
			if !ok {
				return perr.ErrMailboxClosed
			}
			if _, isDone := ev.(proxy.Done); isDone {
				return nil
			}
			if onEvent != nil {
				onEvent(ev)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

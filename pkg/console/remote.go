package console

import (
	"log"
	"net"
)

// RemoteConsole accepts a single controlling TCP connection and exposes
// it as an io.Reader/io.Writer, so a Console can be attached to a remote
// terminal instead of the local stdio pair. Grounded on the teacher's
// SerialTTY, which accepts one control connection the same way.
type RemoteConsole struct {
	conn net.Conn
}

// ListenAndAccept opens a TCP listener on addr (use "127.0.0.1:0" to let
// the OS pick a free port) and blocks until one client attaches.
func ListenAndAccept(addr string) (*RemoteConsole, error) {
	nl, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	defer nl.Close()
	log.Printf("console: waiting for remote console to attach on %s...", nl.Addr())
	conn, err := nl.Accept()
	if err != nil {
		return nil, err
	}
	return &RemoteConsole{conn: conn}, nil
}

// Read implements io.Reader.
func (r *RemoteConsole) Read(p []byte) (int, error) { return r.conn.Read(p) }

// Write implements io.Writer.
func (r *RemoteConsole) Write(p []byte) (int, error) { return r.conn.Write(p) }

// Close closes the underlying connection.
func (r *RemoteConsole) Close() error { return r.conn.Close() }

// LocalAddr returns the address the listener accepted the connection on.
func (r *RemoteConsole) LocalAddr() net.Addr { return r.conn.LocalAddr() }

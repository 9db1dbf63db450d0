package main

import (
	"context"
	"net"
)

// NewPipeListener connects the render and config windows with an
// in-process pipe. The returned listener accepts exactly one
// connection; both ends close when ctx is cancelled.
func NewPipeListener(ctx context.Context) (client net.Conn, listener net.Listener) {
	clientPipe, listenerPipe := net.Pipe()
	context.AfterFunc(ctx, func() {
		clientPipe.Close()
		listenerPipe.Close()
	})
	return clientPipe, &pipeListener{
		pipe: listenerPipe,
		done: make(chan struct{}),
	}
}

type pipeListener struct {
	pipe net.Conn
	done chan struct{}
}

func (p *pipeListener) Accept() (net.Conn, error) {
	if p.pipe != nil {
		pipe := p.pipe
		p.pipe = nil
		return pipe, nil
	}
	<-p.done
	return nil, net.ErrClosed
}

func (p *pipeListener) Close() error {
	close(p.done)
	return nil
}

func (p *pipeListener) Addr() net.Addr {
	return &net.UnixAddr{Name: "pipe", Net: "pipe"}
}

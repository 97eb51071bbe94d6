package main

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
)

func TestProductFields_ApplyKeepsOmitted(t *testing.T) {
	price := 12.5
	zero := 0
	f := productFields{Price: &price, Stock: &zero, Category: "kitchen"}

	got := f.apply(domain.ProductForm{Name: "Lamp", Description: "Brass", Price: 10, Category: "home", Stock: 3})
	want := domain.ProductForm{Name: "Lamp", Description: "Brass", Price: 12.5, Category: "kitchen", Stock: 0}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestReported(t *testing.T) {
	if reported(nil) != nil {
		t.Fatal("nil stays nil")
	}
	err := reported(domain.ErrLoginRequired)
	var rerr reportedError
	if !errors.As(err, &rerr) || !errors.Is(err, domain.ErrLoginRequired) {
		t.Fatalf("expected a wrapped reported error, got %v", err)
	}
}

type fakeServer struct {
	started  chan struct{}
	shutdown bool
}

func (f *fakeServer) Start(string) error {
	close(f.started)
	select {}
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdown = true
	return nil
}

func TestRunUntilSignal_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &fakeServer{started: make(chan struct{})}
	go func() {
		<-srv.started
		cancel()
	}()
	if err := runUntilSignal(ctx, srv, ":0", zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !srv.shutdown {
		t.Fatal("expected a graceful shutdown")
	}
}

package main

import (
	"videomod/internal/biz"
	"videomod/internal/server"
)

// app bundles the wired top-level components.
type app struct {
	server     *server.Server
	moderation *biz.ModerationUsecase
}

func newApp(srv *server.Server, moderation *biz.ModerationUsecase) *app {
	return &app{server: srv, moderation: moderation}
}

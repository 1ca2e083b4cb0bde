// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package stream pushes draw highlights to open pages over WebSocket.
//
//	hub := stream.NewHub(stream.DefaultConfig())
//	mux.HandleFunc("GET /draws/stream", hub.Serve)
//	hub.Broadcast(event)
//
// Each connection has its own write pump and bounded buffer; a client that
// falls behind is disconnected. Messages reach a client in broadcast order.
package stream

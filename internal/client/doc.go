// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the composition root of the sync engine.
//
// It wires the durable storage layer, the backend adapter, the in-memory
// state containers, the services and the background workers into one Engine
// value exposing the API a UI layer builds on.
package client

package model

// Package model defines domain data structures shared across the service:
// download jobs and their status enum. Jobs are plain values so the registry
// can hand out copies without exposing shared state.

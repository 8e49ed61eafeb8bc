package models

import "github.com/shopspring/decimal"

// FileMutationKind classifies a file change reported by the Claude CLI.
type FileMutationKind string

const (
	FileMutationCreate  FileMutationKind = "create"
	FileMutationEdit    FileMutationKind = "edit"
	FileMutationDelete  FileMutationKind = "delete"
	FileMutationUnknown FileMutationKind = "unknown"
)

// FileMutation is a single file change detected during one CLI invocation.
type FileMutation struct {
	Kind FileMutationKind
	Path string
}

// ExecutionResult is the normalized outcome of one Claude CLI invocation.
// All failure modes are reported through Succeeded/ErrorText rather than
// errors, so downstream formatting always has something to post.
type ExecutionResult struct {
	Succeeded       bool
	Output          string
	ErrorText       string
	ClaudeSessionID string
	FileMutations   []FileMutation
	CostUSD         decimal.Decimal
}

// Package mcp implements the Model Context Protocol (MCP) server for
// QuranKit. It exposes the search core to AI clients over stdio JSON-RPC.
package mcp

import (
	"context"
	"errors"
	"fmt"

	qkerrors "github.com/qurankit/qurankit/internal/errors"
)

// Custom MCP error codes for QuranKit.
const (
	// ErrCodeDatabaseNotFound indicates the scripture database is missing.
	ErrCodeDatabaseNotFound = -32001

	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var qe *qkerrors.QuranError
	if errors.As(err, &qe) {
		return mapQuranError(qe)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

// NewInvalidParamsError creates an error for invalid parameters.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}

// mapQuranError converts a QuranError to an MCPError.
func mapQuranError(qe *qkerrors.QuranError) *MCPError {
	message := qe.Message
	if qe.Suggestion != "" {
		message = fmt.Sprintf("%s %s", qe.Message, qe.Suggestion)
	}

	switch qe.Category {
	case qkerrors.CategoryStorage:
		if qe.Code == qkerrors.ErrCodeDatabaseNotFound {
			return &MCPError{Code: ErrCodeDatabaseNotFound, Message: message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	case qkerrors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: message}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	}
}

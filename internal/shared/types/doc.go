// Package types provides the data structures shared by tool providers.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool, Parameter: Tool specification
//   - Context: Execution context for tool calls
//   - Result: Standard operation result
package types

// Package cli provides the interactive banking command-line client.
//
// NewApp wires configuration, local credential storage, the guarded request
// pipeline, the session manager and the screen router. Run starts a REPL in
// which every screen is entered through the router, so the same guards that
// protect navigation also protect the business commands:
//
//   - login, register, logout, whoami
//   - go <path>, where
//   - customer: account, ops, op <id>, newop, upload <id> <file>, download <docId> <file>
//   - agent: pending, review <id>, approve <id>, reject <id>
//   - admin: users [role], adduser, toggle <id>
package cli

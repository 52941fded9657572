package services

import (
	"net/url"
	"strconv"
	"strings"
)

// Backend endpoints. {id} and {role} are replaced per call.
const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"

	pathAccount          = "/api/client/account"
	pathOperations       = "/api/client/operations"
	pathOperation        = "/api/client/operations/{id}"
	pathOperationUpload  = "/api/client/operations/{id}/document"
	pathDocumentDownload = "/api/client/documents/{id}"

	pathAgentPending  = "/api/agent/operations/pending"
	pathAgentOp       = "/api/agent/operations/{id}"
	pathAgentApprove  = "/api/agent/operations/{id}/approve"
	pathAgentReject   = "/api/agent/operations/{id}/reject"
	pathAgentDocument = "/api/agent/operations/{id}/document"

	pathUsers       = "/api/admin/users"
	pathUser        = "/api/admin/users/{id}"
	pathUserToggle  = "/api/admin/users/{id}/toggle-status"
	pathUsersByRole = "/api/admin/users/role/{role}"
)

func withID(pattern string, id int64) string {
	return strings.Replace(pattern, "{id}", strconv.FormatInt(id, 10), 1)
}

func withRole(pattern, role string) string {
	return strings.Replace(pattern, "{role}", url.PathEscape(role), 1)
}

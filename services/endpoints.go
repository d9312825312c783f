package services

import (
	"fmt"
	"sort"

	"github.com/lborres/kindercrew/core"
)

// Operation IDs HTTP adapters bind handlers to.
const (
	OpGetSession   = "getSession"
	OpLogin        = "loginWithEmailAndPassword"
	OpRegister     = "registerWithEmailAndPassword"
	OpLogout       = "logout"
	OpListChildren = "listChildren"
	OpAddChild     = "addChild"
	OpScreenTime   = "listScreenTime"
	OpGetFilters   = "getContentFilters"
	OpPutFilters   = "updateContentFilters"
	OpListAlerts   = "listAlerts"
	OpResolveAlert = "resolveAlert"
	OpDismissAlert = "dismissAlert"
	OpListReports  = "listCommunityReports"
	OpSubmitReport = "submitCommunityReport"
	OpUpvoteReport = "upvoteCommunityReport"
)

// BaseEndpoints returns framework-agnostic endpoint specifications for the
// session contract and the dashboard. Paths are relative to the adapter's
// base path. Protected endpoints require an authenticated session.
func BaseEndpoints() []core.Endpoint {
	return []core.Endpoint{
		{Path: "/session", Method: "GET", Metadata: core.EndpointMetadata{OperationID: OpGetSession, Description: "Get the current session state"}},
		{Path: "/session/login", Method: "POST", Metadata: core.EndpointMetadata{OperationID: OpLogin, Description: "Log in using email and password"}},
		{Path: "/session/register", Method: "POST", Metadata: core.EndpointMetadata{OperationID: OpRegister, Description: "Register a parent account and log in"}},
		{Path: "/session/logout", Method: "POST", Metadata: core.EndpointMetadata{OperationID: OpLogout, Description: "Log out and forget the persisted session"}},

		{Path: "/children", Method: "GET", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpListChildren, Description: "List monitored children"}},
		{Path: "/children", Method: "POST", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpAddChild, Description: "Add a child profile"}},
		{Path: "/children/:id/screen-time", Method: "GET", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpScreenTime, Description: "List a child's screen-time entries"}},
		{Path: "/children/:id/filters", Method: "GET", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpGetFilters, Description: "Get a child's content filter settings"}},
		{Path: "/children/:id/filters", Method: "PUT", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpPutFilters, Description: "Replace a child's content filter settings"}},
		{Path: "/alerts", Method: "GET", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpListAlerts, Description: "List safety alerts"}},
		{Path: "/alerts/:id/resolve", Method: "POST", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpResolveAlert, Description: "Mark an alert resolved"}},
		{Path: "/alerts/:id", Method: "DELETE", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpDismissAlert, Description: "Dismiss an alert"}},
		{Path: "/reports", Method: "GET", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpListReports, Description: "List community reports"}},
		{Path: "/reports", Method: "POST", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpSubmitReport, Description: "Submit a community report"}},
		{Path: "/reports/:id/upvote", Method: "POST", Protected: true, Metadata: core.EndpointMetadata{OperationID: OpUpvoteReport, Description: "Upvote a community report"}},
	}
}

// EndpointRegistry holds endpoints keyed by "METHOD:PATH" and rejects
// duplicates of either key or operation id.
type EndpointRegistry struct {
	endpoints map[string]*core.Endpoint
	ops       map[string]string // operation id -> key
}

// NewEndpointRegistry creates a registry with BaseEndpoints registered.
func NewEndpointRegistry() *EndpointRegistry {
	reg := &EndpointRegistry{
		endpoints: make(map[string]*core.Endpoint),
		ops:       make(map[string]string),
	}
	// base endpoints are known to be conflict free
	_ = reg.Register(BaseEndpoints()...)
	return reg
}

func endpointKey(ep *core.Endpoint) string {
	return fmt.Sprintf("%s:%s", ep.Method, ep.Path)
}

// Register adds endpoints atomically: if any conflicts with the registry
// or with another in the same batch, none are added.
func (r *EndpointRegistry) Register(endpoints ...core.Endpoint) error {
	keys := make(map[string]bool, len(endpoints))
	ops := make(map[string]bool, len(endpoints))

	for i := range endpoints {
		ep := &endpoints[i]
		key := endpointKey(ep)
		op := ep.Metadata.OperationID

		if _, exists := r.endpoints[key]; exists || keys[key] {
			return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
		}
		if op == "" {
			return fmt.Errorf("endpoint %s %s has no operation id", ep.Method, ep.Path)
		}
		if _, exists := r.ops[op]; exists || ops[op] {
			return fmt.Errorf("operation conflict: %q already registered", op)
		}
		keys[key] = true
		ops[op] = true
	}

	for i := range endpoints {
		ep := endpoints[i]
		key := endpointKey(&ep)
		r.endpoints[key] = &ep
		r.ops[ep.Metadata.OperationID] = key
	}
	return nil
}

// Lookup finds an endpoint by operation id.
func (r *EndpointRegistry) Lookup(operationID string) (*core.Endpoint, bool) {
	key, ok := r.ops[operationID]
	if !ok {
		return nil, false
	}
	return r.endpoints[key], true
}

// Endpoints returns all registered endpoints ordered by path then method,
// so route registration is deterministic.
func (r *EndpointRegistry) Endpoints() []*core.Endpoint {
	result := make([]*core.Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		result = append(result, ep)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		return result[i].Method < result[j].Method
	})
	return result
}

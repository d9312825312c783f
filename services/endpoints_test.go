package services

import (
	"testing"

	"github.com/lborres/kindercrew/core"
)

// Requirement: the session contract is reachable without authentication,
// everything else requires it.
func TestBaseEndpoints_Protection(t *testing.T) {
	public := map[string]bool{
		OpGetSession: true,
		OpLogin:      true,
		OpRegister:   true,
		OpLogout:     true,
	}

	for _, ep := range BaseEndpoints() {
		ep := ep
		t.Run(ep.Metadata.OperationID, func(t *testing.T) {
			if public[ep.Metadata.OperationID] == ep.Protected {
				t.Errorf("%s %s Protected = %v", ep.Method, ep.Path, ep.Protected)
			}
			if ep.Metadata.Description == "" {
				t.Errorf("%s %s has no description", ep.Method, ep.Path)
			}
		})
	}
}

// Requirement: all endpoints must have unique OperationIDs and METHOD:PATH pairs.
func TestBaseEndpoints_AreUnique(t *testing.T) {
	// Arrange
	endpoints := BaseEndpoints()

	// Act & Assert
	ops := make(map[string]bool)
	keys := make(map[string]bool)
	for _, ep := range endpoints {
		if ops[ep.Metadata.OperationID] {
			t.Errorf("duplicate OperationID %q", ep.Metadata.OperationID)
		}
		ops[ep.Metadata.OperationID] = true

		key := ep.Method + ":" + ep.Path
		if keys[key] {
			t.Errorf("duplicate endpoint %q", key)
		}
		keys[key] = true
	}
}

func TestEndpointRegistry_RegistersBaseEndpoints(t *testing.T) {
	// Arrange & Act
	registry := NewEndpointRegistry()

	// Assert
	if got, want := len(registry.Endpoints()), len(BaseEndpoints()); got != want {
		t.Fatalf("Endpoints() returned %d, want %d", got, want)
	}
	ep, ok := registry.Lookup(OpLogin)
	if !ok {
		t.Fatal("Lookup(OpLogin) not found")
	}
	if ep.Path != "/session/login" || ep.Method != "POST" {
		t.Errorf("Lookup(OpLogin) = %s %s", ep.Method, ep.Path)
	}
	if _, ok := registry.Lookup("nope"); ok {
		t.Error("Lookup of unknown operation should fail")
	}
}

func TestEndpointRegistry_EndpointsAreSorted(t *testing.T) {
	endpoints := NewEndpointRegistry().Endpoints()

	for i := 1; i < len(endpoints); i++ {
		prev, cur := endpoints[i-1], endpoints[i]
		if prev.Path > cur.Path || (prev.Path == cur.Path && prev.Method > cur.Method) {
			t.Fatalf("endpoints out of order at %d: %s %s before %s %s", i, prev.Method, prev.Path, cur.Method, cur.Path)
		}
	}
}

// Requirement: Register rejects conflicting batches without partially applying them.
func TestEndpointRegistry_Register(t *testing.T) {
	tests := []struct {
		name      string
		batch     []core.Endpoint
		wantErr   bool
		wantAdded int
	}{
		{
			name:      "new endpoint",
			batch:     []core.Endpoint{endpoint("GET", "/locations", "listLocations")},
			wantAdded: 1,
		},
		{
			name:      "same path different method",
			batch:     []core.Endpoint{endpoint("DELETE", "/children", "removeChildren")},
			wantAdded: 1,
		},
		{
			name:    "duplicate method and path",
			batch:   []core.Endpoint{endpoint("GET", "/session", "getSessionAgain")},
			wantErr: true,
		},
		{
			name:    "duplicate operation id",
			batch:   []core.Endpoint{endpoint("GET", "/other", OpLogout)},
			wantErr: true,
		},
		{
			name:    "missing operation id",
			batch:   []core.Endpoint{endpoint("GET", "/other", "")},
			wantErr: true,
		},
		{
			name: "conflict inside the batch rolls back the whole batch",
			batch: []core.Endpoint{
				endpoint("GET", "/locations", "listLocations"),
				endpoint("GET", "/locations", "listLocationsAgain"),
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			registry := NewEndpointRegistry()
			before := len(registry.Endpoints())

			// Act
			err := registry.Register(test.batch...)

			// Assert
			if (err != nil) != test.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, test.wantErr)
			}
			if got := len(registry.Endpoints()) - before; got != test.wantAdded {
				t.Errorf("Register() added %d endpoints, want %d", got, test.wantAdded)
			}
		})
	}
}

func endpoint(method, path, op string) core.Endpoint {
	return core.Endpoint{
		Path:     path,
		Method:   method,
		Metadata: core.EndpointMetadata{OperationID: op, Description: "test endpoint"},
	}
}

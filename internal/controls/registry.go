package controls

import (
	"errors"
	"sync"
)

// Codec decodes and encodes the wire value of a single control OID into a
// typed Go payload.
type Codec interface {
	// Decode parses a control's value bytes into a typed payload.
	Decode(value []byte) (interface{}, error)
	// Encode renders a typed payload (as returned by Decode, or built by
	// hand) back into the control's value bytes.
	Encode(payload interface{}) ([]byte, error)
	// DefaultInstance returns a zero-value payload of the codec's type, for
	// callers building a control from scratch.
	DefaultInstance() interface{}
}

// ErrAlreadyInitialized is returned by Register once a Registry has served
// its first Decode or Encode call; controls are process-wide shared state
// and are meant to be registered once at startup, not mutated at runtime.
var ErrAlreadyInitialized = errors.New("controls: registry already in use, cannot register new codecs")

// ErrUnknownOID is returned by DecodeStrict for an OID with no registered
// codec. Decode, by contrast, falls back to OpaqueControl.
var ErrUnknownOID = errors.New("controls: no codec registered for this OID")

// OpaqueControl is the payload produced for a control whose OID has no
// registered codec: the raw, undecoded value bytes.
type OpaqueControl struct {
	OID   string
	Value []byte
}

// Registry maps control OIDs to Codecs. The zero value is not usable; use
// NewRegistry. A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
	locked bool
}

// NewRegistry returns a Registry with the bundled codecs pre-registered:
// PagedResults, SortRequest, SortResponse, ManageDsaIT, Subentries,
// ProxiedAuthorization, Cascade, PersistentSearch, and EntryChange.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	for oid, codec := range defaultCodecs() {
		r.codecs[oid] = codec
	}
	return r
}

// NewEmptyRegistry returns a Registry with no codecs pre-registered.
func NewEmptyRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds codec for oid. It fails with ErrAlreadyInitialized once the
// registry has decoded or encoded at least one control.
func (r *Registry) Register(oid string, codec Codec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locked {
		return ErrAlreadyInitialized
	}
	r.codecs[oid] = codec
	return nil
}

// Decode decodes value for oid using its registered codec. If no codec is
// registered for oid, it returns an OpaqueControl carrying the raw value.
func (r *Registry) Decode(oid string, value []byte) (interface{}, error) {
	r.mu.Lock()
	r.locked = true
	codec, ok := r.codecs[oid]
	r.mu.Unlock()

	if !ok {
		return OpaqueControl{OID: oid, Value: value}, nil
	}
	return codec.Decode(value)
}

// DecodeStrict behaves like Decode but returns ErrUnknownOID instead of
// falling back to OpaqueControl.
func (r *Registry) DecodeStrict(oid string, value []byte) (interface{}, error) {
	r.mu.Lock()
	r.locked = true
	codec, ok := r.codecs[oid]
	r.mu.Unlock()

	if !ok {
		return nil, ErrUnknownOID
	}
	return codec.Decode(value)
}

// Encode encodes payload using the codec registered for oid.
func (r *Registry) Encode(oid string, payload interface{}) ([]byte, error) {
	r.mu.Lock()
	r.locked = true
	codec, ok := r.codecs[oid]
	r.mu.Unlock()

	if !ok {
		return nil, ErrUnknownOID
	}
	return codec.Encode(payload)
}

func defaultCodecs() map[string]Codec {
	return map[string]Codec{
		OIDPagedResults:         PagedResultsCodec{},
		OIDSortRequest:          SortRequestCodec{},
		OIDSortResponse:         SortResponseCodec{},
		OIDManageDsaIT:          ManageDsaITCodec{},
		OIDSubentries:           SubentriesCodec{},
		OIDProxiedAuthorization: ProxiedAuthorizationCodec{},
		OIDCascade:              CascadeCodec{},
		OIDPersistentSearch:     PersistentSearchCodec{},
		OIDEntryChange:          EntryChangeCodec{},
	}
}

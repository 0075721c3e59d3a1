package typesys

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Envelope is the persisted, self-describing form of a Type.
type Envelope struct {
	TypeKindTag   string `json:"TypeKindTag"`
	CustomPayload string `json:"CustomPayload"`
}

type concretePayload struct {
	Name     string     `json:"Name"`
	Generics []Envelope `json:"Generics,omitempty"`
}

type undefinedPayload struct {
	Name string    `json:"Name"`
	ID   uuid.UUID `json:"Id"`
}

type deserializer func(r *Registry, payload string) (Type, error)

// deserializers is filled in init because the concrete deserializer recurses
// through Registry.Deserialize.
var deserializers map[Kind]deserializer

func init() {
	deserializers = map[Kind]deserializer{
		KindConcrete:  deserializeConcrete,
		KindUndefined: deserializeUndefined,
		KindExec:      func(*Registry, string) (Type, error) { return Exec, nil },
	}
}

// Serialize converts t into its envelope.
func Serialize(t Type) (Envelope, error) {
	var payload any
	switch v := t.(type) {
	case *ConcreteType:
		p := concretePayload{Name: v.desc.FullName()}
		for _, a := range v.args {
			env, err := Serialize(a)
			if err != nil {
				return Envelope{}, err
			}
			p.Generics = append(p.Generics, env)
		}
		payload = p
	case *UndefinedGenericType:
		payload = undefinedPayload{Name: v.name, ID: v.id}
	case *ExecType:
		return Envelope{TypeKindTag: string(KindExec)}, nil
	default:
		return Envelope{}, fmt.Errorf("%w: cannot serialize %T", ErrUnknownTypeKind, t)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("serializing %s: %w", t.FullName(), err)
	}
	return Envelope{TypeKindTag: string(t.Kind()), CustomPayload: string(data)}, nil
}

// MarshalType serializes t and encodes the envelope as JSON.
func MarshalType(t Type) ([]byte, error) {
	env, err := Serialize(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Deserialize resolves env against the registry. Placeholders already known
// to the registry are returned as the same instance.
func (r *Registry) Deserialize(env Envelope) (Type, error) {
	fn, ok := deserializers[Kind(env.TypeKindTag)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTypeKind, env.TypeKindTag)
	}
	return fn(r, env.CustomPayload)
}

// UnmarshalType decodes a JSON envelope and deserializes it.
func (r *Registry) UnmarshalType(data []byte) (Type, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return r.Deserialize(env)
}

func deserializeConcrete(r *Registry, payload string) (Type, error) {
	var p concretePayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("%w: concrete payload: %v", ErrMalformedEnvelope, err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: concrete payload has no name", ErrMalformedEnvelope)
	}
	d, ok := r.Descriptor(p.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDescriptor, p.Name)
	}
	args := make([]Type, len(p.Generics))
	for i, g := range p.Generics {
		t, err := r.Deserialize(g)
		if err != nil {
			return nil, fmt.Errorf("argument %d of %s: %w", i, p.Name, err)
		}
		args[i] = t
	}
	return r.Get(d, args...)
}

func deserializeUndefined(r *Registry, payload string) (Type, error) {
	var p undefinedPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("%w: placeholder payload: %v", ErrMalformedEnvelope, err)
	}
	if p.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: placeholder %q has no id", ErrMalformedEnvelope, p.Name)
	}
	return r.restoreUndefined(p.Name, p.ID)
}

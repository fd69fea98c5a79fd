// Package solver implements solvers which compute the weights of the
// least-squares fixed point of a policy's Q-function from a batch of
// samples. Solvers are described by Configs which can be JSON
// serialized into configuration files.
package solver

import (
	"encoding/json"
	"fmt"
	"reflect"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
)

// Solver computes new policy weights from a batch of samples and the
// policy being evaluated. Solvers never modify the policy and always
// return a new vector of length p.Basis().Size().
type Solver interface {
	Solve(samples []sample.Sample, p *policy.Policy) (*mat.VecDense, error)
}

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	LSTDQType    Type = "LSTDQ"
	LSTDQOptType Type = "LSTDQOpt"
)

// Config describes a Solver and can be used to create the Solver it
// describes
type Config interface {
	Create() (Solver, error)

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool
}

// Typed wraps Solvers so that they can be JSON marshalled and
// unmarshalled along with their type
type Typed struct {
	Solver `json:"-"`
	Type
	Config
}

// NewTyped returns a new Typed solver with the given type and
// configuration
func NewTyped(t Type, c Config) (*Typed, error) {
	if c == nil || !c.ValidType(t) {
		return nil, lspierr.Config("newTyped", "invalid solver type %v "+
			"for configuration %T", t, c)
	}

	solver, err := c.Create()
	if err != nil {
		return nil, err
	}

	return &Typed{Solver: solver, Type: t, Config: c}, nil
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (t *Typed) UnmarshalJSON(data []byte) error {
	config, typeName, err := unmarshalConfig(
		data,
		"Type",
		"Config",
		map[string]reflect.Type{
			string(LSTDQType):    reflect.TypeOf(LSTDQConfig{}),
			string(LSTDQOptType): reflect.TypeOf(LSTDQOptConfig{}),
		})
	if err != nil {
		return err
	}

	solver, err := config.Create()
	if err != nil {
		return err
	}

	t.Type = typeName
	t.Config = config
	t.Solver = solver

	return nil
}

// unmarshalConfig uses reflection to unmarshall a Config into its
// concrete type. Both the Config and its Type are returned.
func unmarshalConfig(data []byte, typeJsonField, valueJsonField string,
	customTypes map[string]reflect.Type) (Config, Type, error) {
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", err
	}

	typeName, ok := m[typeJsonField].(string)
	if !ok {
		return nil, "", fmt.Errorf("unmarshalConfig: missing string "+
			"field %q", typeJsonField)
	}

	ty, found := customTypes[typeName]
	if !found {
		return nil, "", lspierr.Config("unmarshalConfig", "unknown "+
			"solver type %q", typeName)
	}
	value := reflect.New(ty)

	valueBytes, err := json.Marshal(m[valueJsonField])
	if err != nil {
		return nil, "", err
	}

	if err = json.Unmarshal(valueBytes, value.Interface()); err != nil {
		return nil, "", err
	}

	return value.Elem().Interface().(Config), Type(typeName), nil
}

package dataclass

import (
	"sort"
	"strings"
)

// Target is the object a constructor initializes. Routing a name to a
// native slot or a host attribute is up to the implementation.
type Target interface {
	// CheckSlot reports whether value may be assigned to name, without assigning it
	CheckSlot(name string, value any) error

	// AssignSlot stores value under name
	AssignSlot(name string, value any) error
}

// Constructor binds call arguments to a signature and initializes targets.
// It never mutates the signature or the field set it was built from.
type Constructor struct {
	class     string
	signature *Signature
	fields    *FieldSet
}

// Bind creates the generic constructor for a signature and its field set
func Bind(sig *Signature, fields *FieldSet) *Constructor {
	return &Constructor{
		class:     sig.class,
		signature: sig,
		fields:    fields,
	}
}

// Signature returns the bound signature
func (c *Constructor) Signature() *Signature {
	return c.signature
}

type assignment struct {
	name  string
	value any
}

// resolve binds args and kwargs and returns the value of every field to
// assign, in field order. Fields outside the signature get their default;
// fields without any default that are outside the signature are skipped.
func (c *Constructor) resolve(args []any, kwargs map[string]any) ([]assignment, error) {
	sig := c.signature

	if len(args) > sig.positional {
		return nil, c.tooManyPositional(len(args))
	}

	bound := make(map[string]any, len(sig.params))
	for i, v := range args {
		bound[sig.params[i].Name] = v
	}

	for _, name := range sortedKeys(kwargs) {
		if _, ok := sig.index[name]; !ok {
			return nil, typeErrorf(ErrUnexpectedKeyword, c.class, name,
				"%s() got an unexpected keyword argument %q", c.class, name)
		}
		if _, dup := bound[name]; dup {
			return nil, typeErrorf(ErrMultipleValues, c.class, name,
				"%s() got multiple values for argument %q", c.class, name)
		}
		bound[name] = kwargs[name]
	}

	var missing []string
	for _, p := range sig.params {
		if _, ok := bound[p.Name]; !ok && p.Required() {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return nil, typeErrorf(ErrMissingArgument, c.class, missing[0],
			"%s() missing %d required argument(s): %s", c.class, len(missing), quoteJoin(missing))
	}

	out := make([]assignment, 0, c.fields.Len())
	for _, f := range c.fields.fields {
		if v, ok := bound[f.name]; ok {
			out = append(out, assignment{name: f.name, value: v})
			continue
		}
		if f.HasDefault() {
			out = append(out, assignment{name: f.name, value: f.defaultValueFor()})
		}
	}
	return out, nil
}

// Call initializes target from positional and keyword arguments. Every
// argument error and every slot check happens before the first assignment.
func (c *Constructor) Call(target Target, args []any, kwargs map[string]any) error {
	values, err := c.resolve(args, kwargs)
	if err != nil {
		return err
	}

	for _, a := range values {
		if err := target.CheckSlot(a.name, a.value); err != nil {
			return &TypeError{
				Code:    ErrSlotType,
				Class:   c.class,
				Field:   a.name,
				Message: "cannot assign argument",
				Cause:   err,
			}
		}
	}

	for _, a := range values {
		if err := target.AssignSlot(a.name, a.value); err != nil {
			return &TypeError{
				Code:    ErrSlotType,
				Class:   c.class,
				Field:   a.name,
				Message: "cannot assign argument",
				Cause:   err,
			}
		}
	}
	return nil
}

func (c *Constructor) tooManyPositional(given int) *TypeError {
	sig := c.signature
	if sig.positional == 0 {
		return typeErrorf(ErrTooManyPositional, c.class, "",
			"%s() takes no positional arguments but %d were given; pass %s by keyword",
			c.class, given, quoteJoin(sig.Names()))
	}
	if sig.positional < len(sig.params) {
		return typeErrorf(ErrTooManyPositional, c.class, "",
			"%s() takes %d positional arguments but %d were given; keyword-only parameters cannot be passed positionally",
			c.class, sig.positional, given)
	}
	return typeErrorf(ErrTooManyPositional, c.class, "",
		"%s() takes %d positional arguments but %d were given", c.class, sig.positional, given)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, ", ")
}

package veil

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the conceal tag with sentinel
	sentinel.Tag("conceal")
}

// Processor applies obfuscation codecs to tagged struct fields.
// Fields are declared via the conceal tag:
//
//	type Bundle struct {
//	    Loader string `conceal:"fragment"`
//	    Banner string `conceal:"strings"`
//	}
//
// Conceal encodes every tagged field; Reveal decodes fragment fields.
// Fields tagged strings are one-way: their artifacts stay self-decoding at
// run time, so Reveal leaves them concealed. The rename method is rejected
// at construction because its decode key cannot travel through the field.
//
// Processors are safe for concurrent use. SetSecret may be called at any
// time to update or rotate keys. Validation occurs automatically on first
// operation; configure all required secrets before the first call to
// Conceal or Reveal.
type Processor[T Cloner[T]] struct {
	// Mutable configuration protected by mu
	mu      sync.RWMutex
	secrets map[Method]string

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error

	// Field plans (immutable after construction)
	fields []processorFieldPlan

	typeName string
}

// processorFieldPlan describes how to transform a single string field.
type processorFieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // field name for error messages
	method     Method // codec applied to the field
	ptrIndices []int  // indices where pointer dereference is needed
}

// NewProcessor creates a Processor for type T by scanning its conceal tags.
// Secrets must be configured via SetSecret before the first operation on
// fields whose method requires one.
func NewProcessor[T Cloner[T]]() (*Processor[T], error) {
	spec := sentinel.Scan[T]()

	p := &Processor[T]{
		secrets:  make(map[Method]string),
		typeName: spec.TypeName,
	}

	if err := p.buildPlansRecursive(spec, nil, nil, ""); err != nil {
		return nil, err
	}

	return p, nil
}

// buildPlansRecursive processes fields and nested structs.
func (p *Processor[T]) buildPlansRecursive(spec sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		// Handle nested structs
		if field.Kind == sentinel.KindStruct {
			if nested := scanNestedType(field.ReflectType); nested != nil {
				if err := p.buildPlansRecursive(*nested, fullIndex, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		// Handle pointer to struct
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			if nested := scanNestedType(field.ReflectType.Elem()); nested != nil {
				newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := p.buildPlansRecursive(*nested, fullIndex, newPtrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		val, ok := field.Tags["conceal"]
		if !ok {
			continue
		}
		if field.ReflectType.Kind() != reflect.String {
			return fmt.Errorf("conceal tag on non-string field %s (%s)", fullName, field.ReflectType)
		}

		method := Method(val)
		if !IsValidMethod(method) {
			return fmt.Errorf("invalid conceal method %q for field %s", val, fullName)
		}
		if !IsSelfDecoding(method) {
			return fmt.Errorf("conceal method %q for field %s: decode key cannot travel through the field", val, fullName)
		}

		p.fields = append(p.fields, processorFieldPlan{
			index:      fullIndex,
			name:       fullName,
			method:     method,
			ptrIndices: ptrIndices,
		})
	}

	return nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseConcealTag(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// parseConcealTag extracts the conceal tag from a struct tag.
func parseConcealTag(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup("conceal"); ok {
		tags["conceal"] = val
	}
	return tags
}

// SetSecret registers the secret for a method.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) SetSecret(method Method, secret string) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.secrets[method] = secret
	return p
}

// Validate checks that every tagged field's method has a registered secret
// where one is required. Validation also runs automatically on the first
// operation; calling Validate explicitly catches configuration errors at
// startup.
func (p *Processor[T]) Validate() error {
	return p.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (p *Processor[T]) ensureValidated() error {
	p.validateOnce.Do(func() {
		p.mu.RLock()
		defer p.mu.RUnlock()
		for _, plan := range p.fields {
			if NeedsSecret(plan.method) && p.secrets[plan.method] == "" {
				p.validateErr = fmt.Errorf("missing secret for method %q (field %s)", plan.method, plan.name)
				return
			}
		}
	})
	return p.validateErr
}

// Conceal returns a clone of obj with every tagged field encoded.
func (p *Processor[T]) Conceal(ctx context.Context, obj *T) (*T, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	clone := (*obj).Clone()

	p.mu.RLock()
	defer p.mu.RUnlock()

	// Check for override interface
	if c, ok := any(&clone).(Concealable); ok {
		if err := c.ConcealFields(ctx, p.secrets); err != nil {
			return nil, fmt.Errorf("conceal: %w", err)
		}
		return &clone, nil
	}

	rv := reflect.ValueOf(&clone).Elem()
	for _, plan := range p.fields {
		field, ok := p.getField(rv, plan)
		if !ok || !field.CanSet() {
			continue
		}

		codec, err := Use(plan.method)
		if err != nil {
			return nil, err
		}
		res, err := codec.Encode(ctx, field.String(), p.secrets[plan.method])
		if err != nil {
			return nil, fmt.Errorf("conceal field %s: %w", plan.name, err)
		}
		field.SetString(res.Text)
	}

	return &clone, nil
}

// Reveal returns a clone of obj with fragment fields decoded. Fields
// tagged with a lossy method stay concealed.
func (p *Processor[T]) Reveal(ctx context.Context, obj *T) (*T, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	clone := (*obj).Clone()

	p.mu.RLock()
	defer p.mu.RUnlock()

	// Check for override interface
	if r, ok := any(&clone).(Revealable); ok {
		if err := r.RevealFields(ctx, p.secrets); err != nil {
			return nil, fmt.Errorf("reveal: %w", err)
		}
		return &clone, nil
	}

	rv := reflect.ValueOf(&clone).Elem()
	for _, plan := range p.fields {
		if IsLossy(plan.method) {
			continue
		}

		field, ok := p.getField(rv, plan)
		if !ok || !field.CanSet() {
			continue
		}

		codec, err := Use(plan.method)
		if err != nil {
			return nil, err
		}
		res, err := codec.Decode(ctx, field.String(), p.secrets[plan.method])
		if err != nil {
			return nil, fmt.Errorf("reveal field %s: %w", plan.name, err)
		}
		field.SetString(res.Text)
	}

	return &clone, nil
}

// getField navigates a field path, dereferencing pointers as needed.
func (p *Processor[T]) getField(rv reflect.Value, plan processorFieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	current := rv
	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	for i, idx := range plan.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}

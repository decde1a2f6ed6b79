package opt

import "strings"

type parseState int

const (
	stateOptions parseState = iota
	stateInputs             // after "--": everything is a positional input
)

type parseConfig struct {
	strictUnknown bool
	exclude       Visibility
}

// ParseOption configures Table.ParseArgs
type ParseOption func(*parseConfig)

// WithStrictUnknown makes unknown option tokens an error instead of
// KindUnknown args.
func WithStrictUnknown() ParseOption {
	return func(c *parseConfig) { c.strictUnknown = true }
}

// WithFlagsExcluded treats options carrying any of v as unknown
func WithFlagsExcluded(v Visibility) ParseOption {
	return func(c *parseConfig) { c.exclude |= v }
}

// parser matches raw strings against a table in a single left to right pass,
// appending one Arg per occurrence to the list that owns the strings.
type parser struct {
	table    *Table
	list     *InputArgList
	cfg      parseConfig
	state    parseState
	position int
}

// ParseArgs takes ownership of argv and matches it against the table. On a
// missing value the list built so far is returned together with a
// *ParseError carrying the index of the incomplete option.
func (t *Table) ParseArgs(argv []string, opts ...ParseOption) (*InputArgList, error) {
	p := &parser{table: t, list: NewInputArgList(argv)}
	for _, apply := range opts {
		apply(&p.cfg)
	}
	return p.list, p.run()
}

func (p *parser) run() error {
	n := p.list.NumInputArgStrings()
	for p.position < n {
		tok := p.list.strings[p.position]

		// Empty tokens are skipped; an option may still take one as its value.
		if tok == "" {
			p.position++
			continue
		}

		if p.state == stateInputs {
			p.list.append(InputArg(p.position))
			p.position++
			continue
		}

		if tok == "--" {
			p.state = stateInputs
			p.position++
			continue
		}

		if !p.table.IsOptionLike(tok) {
			p.list.append(InputArg(p.position))
			p.position++
			continue
		}

		if err := p.parseOption(tok); err != nil {
			return err
		}
	}
	return nil
}

//nolint:gocyclo // one case per option kind
func (p *parser) parseOption(tok string) error {
	idx := p.position
	o, n, ok := p.table.Match(tok)
	if !ok || (p.cfg.exclude != 0 && o.flags&p.cfg.exclude != 0) {
		if p.cfg.strictUnknown {
			return p.table.unknownOptionError(tok, idx)
		}
		p.list.append(UnknownArg(tok, idx))
		p.position++
		return nil
	}

	spelling := tok[:n]
	var values []ValueRef
	consumed := 1

	switch o.kind {
	case KindFlag:
	case KindJoined:
		values = []ValueRef{JoinedValue(idx, n)}
	case KindCommaJoined:
		if rest := tok[n:]; rest != "" {
			parts := strings.Count(rest, ",") + 1
			values = make([]ValueRef, parts)
			for i := range values {
				values[i] = CommaValue(idx, n, i)
			}
		}
	case KindSeparate:
		if err := p.need(o, 1); err != nil {
			return err
		}
		values = []ValueRef{SeparateValue(idx + 1)}
		consumed = 2
	case KindJoinedOrSeparate:
		if n < len(tok) {
			values = []ValueRef{JoinedValue(idx, n)}
			break
		}
		if err := p.need(o, 1); err != nil {
			return err
		}
		values = []ValueRef{SeparateValue(idx + 1)}
		consumed = 2
	case KindMulti:
		if err := p.need(o, o.numArgs); err != nil {
			return err
		}
		values = make([]ValueRef, o.numArgs)
		for i := range values {
			values[i] = SeparateValue(idx + 1 + i)
		}
		consumed = 1 + o.numArgs
	default:
		return errorf(ErrorTypeBadDefinition, "option '%s' of kind %s cannot be matched", o.PrefixedName(), o.kind)
	}

	a, err := NewArg(o, spelling, idx, values...)
	if err != nil {
		return err
	}
	p.list.append(a)
	p.position += consumed
	return nil
}

// need checks that count value tokens follow the current position
func (p *parser) need(o *Option, count int) error {
	have := p.list.NumInputArgStrings() - p.position - 1
	if have >= count {
		return nil
	}
	return missingValueError(o, p.position, count-have)
}

package jsparser

import (
	"github.com/cversek/js-demini/internal/jsast"
	"github.com/cversek/js-demini/internal/jslexer"
	"github.com/cversek/js-demini/internal/logger"
)

const exprNoIn = 1 << 0

// binPrec is the precedence-climbing table. Numerically higher binds
// tighter. "in"/"instanceof" share compare-level precedence with the rest
// of JS's relational operators.
var binPrec = map[jslexer.T]int{
	jslexer.TBarBar:          1,
	jslexer.TQuestionQuestion: 1,
	jslexer.TAmpersandAmpersand: 2,
	jslexer.TBar:             3,
	jslexer.TCaret:           4,
	jslexer.TAmpersand:       5,
	jslexer.TEqualsEquals:    6,
	jslexer.TExclamationEquals: 6,
	jslexer.TEqualsEqualsEquals: 6,
	jslexer.TExclamationEqualsEquals: 6,
	jslexer.TLessThan:        7,
	jslexer.TLessThanEquals:  7,
	jslexer.TGreaterThan:     7,
	jslexer.TGreaterThanEquals: 7,
	jslexer.TLessThanLessThan: 8,
	jslexer.TGreaterThanGreaterThan: 8,
	jslexer.TGreaterThanGreaterThanGreaterThan: 8,
	jslexer.TPlus:  9,
	jslexer.TMinus: 9,
	jslexer.TAsterisk: 10,
	jslexer.TSlash:    10,
	jslexer.TPercent:  10,
	jslexer.TAsteriskAsterisk: 11,
}

var assignOps = map[jslexer.T]string{
	jslexer.TEquals: "=", jslexer.TPlusEquals: "+=", jslexer.TMinusEquals: "-=",
	jslexer.TAsteriskEquals: "*=", jslexer.TSlashEquals: "/=", jslexer.TPercentEquals: "%=",
	jslexer.TAsteriskAsteriskEquals: "**=", jslexer.TLessThanLessThanEquals: "<<=",
	jslexer.TGreaterThanGreaterThanEquals: ">>=", jslexer.TGreaterThanGreaterThanGreaterThanEquals: ">>>=",
	jslexer.TAmpersandEquals: "&=", jslexer.TBarEquals: "|=", jslexer.TCaretEquals: "^=",
	jslexer.TAmpersandAmpersandEquals: "&&=", jslexer.TBarBarEquals: "||=", jslexer.TQuestionQuestionEquals: "??=",
}

// parseExpr parses a full expression, including top-level comma (sequence)
// operators; used at statement-expression level and inside for(;;) clauses.
func (p *Parser) parseExpr(flags int) jsast.Expr {
	start := p.loc()
	first := p.parseAssign(flags)
	if !p.at(jslexer.TComma) {
		return first
	}
	exprs := []jsast.Expr{first}
	for p.at(jslexer.TComma) {
		p.lex.Next()
		exprs = append(exprs, p.parseAssign(flags))
	}
	return p.finishExpr(start, &jsast.ESequence{Exprs: exprs})
}

// parseAssign parses an assignment-level expression (no bare top commas).
func (p *Parser) parseAssign(flags int) jsast.Expr {
	start := p.loc()

	if arrow, ok := p.tryParseArrowFromIdentifier(); ok {
		return arrow
	}

	left := p.parseConditional(flags)

	if op, ok := assignOps[p.lex.Token]; ok {
		p.lex.Next()
		right := p.parseAssign(flags)
		return p.finishExpr(start, &jsast.EAssign{Op: op, Target: left, Value: right})
	}
	return left
}

// tryParseArrowFromIdentifier handles the common `x => ...` and
// `async x => ...` single-bare-identifier-parameter arrow shape without the
// parenthesized cover-grammar machinery, and the `async (...) => ...` shape
// by way of parseParenOrArrow.
func (p *Parser) tryParseArrowFromIdentifier() (jsast.Expr, bool) {
	start := p.loc()
	isAsync := false
	saved := *p.lex
	if p.isIdent("async") {
		p.lex.Next()
		if p.lex.HadNewlineBefore {
			*p.lex = saved
			return jsast.Expr{}, false
		}
		isAsync = true
	}
	if isAsync && p.at(jslexer.TOpenParen) {
		e := p.parseParenOrArrow(start)
		if arrow, ok := e.Data.(*jsast.EArrow); ok {
			arrow.Fn.IsAsync = true
			return e, true
		}
		// Not an arrow: `async(...)` is an ordinary call.
		*p.lex = saved
		return jsast.Expr{}, false
	}
	if p.at(jslexer.TIdentifier) && !jslexer.IsKeyword(p.lex.Raw) {
		name := p.lex.Raw
		paramStart := p.loc()
		afterIdent := *p.lex
		p.lex.Next()
		if p.at(jslexer.TEqualsGreaterThan) {
			p.lex.Next()
			param := jsast.Binding{Kind: jsast.BindIdentifier, Name: name, RestIndex: -1}
			_ = paramStart
			fn := p.parseArrowBody([]jsast.Binding{param}, isAsync)
			return p.finishExpr(start, &jsast.EArrow{Fn: fn}), true
		}
		*p.lex = afterIdent
	}
	*p.lex = saved
	return jsast.Expr{}, false
}

func (p *Parser) parseArrowBody(params []jsast.Binding, isAsync bool) jsast.Fn {
	if p.at(jslexer.TOpenBrace) {
		p.lex.Next()
		body := p.parseStmtList(jslexer.TCloseBrace)
		p.expect(jslexer.TCloseBrace, "}")
		return jsast.Fn{Params: params, Body: body, IsArrow: true, IsAsync: isAsync}
	}
	e := p.parseAssign(0)
	return jsast.Fn{Params: params, IsArrow: true, IsAsync: isAsync, ArrowExpr: &e}
}

func (p *Parser) parseConditional(flags int) jsast.Expr {
	start := p.loc()
	test := p.parseBinary(0, flags)
	if p.at(jslexer.TQuestion) {
		p.lex.Next()
		yes := p.parseAssign(0)
		p.expect(jslexer.TColon, ":")
		no := p.parseAssign(0)
		return p.finishExpr(start, &jsast.EConditional{Test: test, Yes: yes, No: no})
	}
	return test
}

func (p *Parser) parseBinary(minPrec int, flags int) jsast.Expr {
	start := p.loc()
	left := p.parseUnary(flags)
	for {
		if p.isIdent("in") && flags&exprNoIn != 0 {
			break
		}
		if p.isIdent("in") || p.isIdent("instanceof") {
			prec := 7
			if prec < minPrec {
				break
			}
			op := p.lex.Raw
			p.lex.Next()
			right := p.parseBinary(prec+1, flags)
			left = p.finishExpr(start, &jsast.EBinary{Op: op, Left: left, Right: right})
			continue
		}
		prec, ok := binPrec[p.lex.Token]
		if !ok || prec < minPrec {
			break
		}
		op := tokenText(p.lex.Token)
		rightAssoc := p.lex.Token == jslexer.TAsteriskAsterisk
		p.lex.Next()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right := p.parseBinary(nextMin, flags)
		left = p.finishExpr(start, &jsast.EBinary{Op: op, Left: left, Right: right})
	}
	return left
}

func (p *Parser) parseUnary(flags int) jsast.Expr {
	start := p.loc()
	switch {
	case p.at(jslexer.TExclamation), p.at(jslexer.TTilde), p.at(jslexer.TPlus), p.at(jslexer.TMinus):
		op := tokenText(p.lex.Token)
		p.lex.Next()
		val := p.parseUnary(flags)
		return p.finishExpr(start, &jsast.EUnary{Op: op, Value: val, Prefix: true})
	case p.at(jslexer.TPlusPlus), p.at(jslexer.TMinusMinus):
		op := tokenText(p.lex.Token)
		p.lex.Next()
		val := p.parseUnary(flags)
		return p.finishExpr(start, &jsast.EUnary{Op: op, Value: val, Prefix: true})
	case p.isIdent("typeof"), p.isIdent("void"), p.isIdent("delete"):
		op := p.lex.Raw
		p.lex.Next()
		val := p.parseUnary(flags)
		return p.finishExpr(start, &jsast.EUnary{Op: op, Value: val, Prefix: true})
	case p.isIdent("await"):
		p.lex.Next()
		val := p.parseUnary(flags)
		return p.finishExpr(start, &jsast.EAwait{Value: val})
	case p.isIdent("yield"):
		p.lex.Next()
		delegate := false
		if p.at(jslexer.TAsterisk) {
			delegate = true
			p.lex.Next()
		}
		var val *jsast.Expr
		if !p.at(jslexer.TSemicolon) && !p.at(jslexer.TCloseParen) && !p.at(jslexer.TCloseBrace) &&
			!p.at(jslexer.TComma) && !p.at(jslexer.TCloseBracket) && !p.at(jslexer.TEndOfFile) && !p.lex.HadNewlineBefore {
			e := p.parseAssign(0)
			val = &e
		}
		return p.finishExpr(start, &jsast.EYield{Value: val, Delegate: delegate})
	}
	return p.parsePostfix(flags)
}

func (p *Parser) parsePostfix(flags int) jsast.Expr {
	start := p.loc()
	e := p.parsePrimary(flags)
	for {
		switch {
		case p.at(jslexer.TDot):
			p.lex.Next()
			name := p.lex.Raw
			p.lex.Next()
			e = p.finishExpr(start, &jsast.EMember{Target: e, Property: name})
		case p.at(jslexer.TQuestionDot):
			p.lex.Next()
			if p.at(jslexer.TOpenParen) {
				args := p.parseArgs()
				e = p.finishExpr(start, &jsast.ECall{Target: e, Args: args, OptionalChain: true})
				continue
			}
			if p.at(jslexer.TOpenBracket) {
				p.lex.Next()
				idx := p.parseExpr(0)
				p.expect(jslexer.TCloseBracket, "]")
				e = p.finishExpr(start, &jsast.EMember{Target: e, Computed: true, PropertyExpr: &idx, OptionalChain: true})
				continue
			}
			name := p.lex.Raw
			p.lex.Next()
			e = p.finishExpr(start, &jsast.EMember{Target: e, Property: name, OptionalChain: true})
		case p.at(jslexer.TOpenBracket):
			p.lex.Next()
			idx := p.parseExpr(0)
			p.expect(jslexer.TCloseBracket, "]")
			e = p.finishExpr(start, &jsast.EMember{Target: e, Computed: true, PropertyExpr: &idx})
		case p.at(jslexer.TOpenParen):
			args := p.parseArgs()
			e = p.finishExpr(start, &jsast.ECall{Target: e, Args: args})
		case p.at(jslexer.TNoSubstitutionTemplateLiteral), p.at(jslexer.TTemplateHead):
			// Tagged template: fold the template's interpolations in so the
			// identifier walker still finds them.
			tmpl := p.parseTemplateFrom()
			e = p.finishExpr(start, tmpl)
		case (p.at(jslexer.TPlusPlus) || p.at(jslexer.TMinusMinus)) && !p.lex.HadNewlineBefore:
			op := tokenText(p.lex.Token)
			p.lex.Next()
			e = p.finishExpr(start, &jsast.EUnary{Op: op, Value: e, Prefix: false})
		default:
			return e
		}
	}
}

func (p *Parser) parseArgs() []jsast.Expr {
	p.expect(jslexer.TOpenParen, "(")
	var args []jsast.Expr
	for !p.at(jslexer.TCloseParen) {
		if p.at(jslexer.TDotDotDot) {
			start := p.loc()
			p.lex.Next()
			v := p.parseAssign(0)
			args = append(args, p.finishExpr(start, &jsast.ESpread{Value: v}))
		} else {
			args = append(args, p.parseAssign(0))
		}
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	p.expect(jslexer.TCloseParen, ")")
	return args
}

func (p *Parser) parsePrimary(flags int) jsast.Expr {
	start := p.loc()
	switch {
	case p.at(jslexer.TNumericLiteral):
		raw := p.lex.Raw
		p.lex.Next()
		return p.finishExpr(start, &jsast.ENumber{Raw: raw})
	case p.at(jslexer.TBigIntLiteral):
		raw := p.lex.Raw
		p.lex.Next()
		return p.finishExpr(start, &jsast.EBigInt{Raw: raw})
	case p.at(jslexer.TStringLiteral):
		raw := p.lex.Raw
		p.lex.Next()
		return p.finishExpr(start, &jsast.EString{Raw: raw})
	case p.at(jslexer.TRegExpLiteral):
		raw := p.lex.Raw
		p.lex.Next()
		return p.finishExpr(start, &jsast.ERegExp{Raw: raw})
	case p.at(jslexer.TNoSubstitutionTemplateLiteral), p.at(jslexer.TTemplateHead):
		tmpl := p.parseTemplateFrom()
		return p.finishExpr(start, tmpl)
	case p.at(jslexer.TPrivateIdentifier):
		name := p.lex.Raw
		p.lex.Next()
		return p.finishExpr(start, &jsast.EIdentifier{Name: name})
	case p.isIdent("true"):
		p.lex.Next()
		return p.finishExpr(start, &jsast.EBoolean{Value: true})
	case p.isIdent("false"):
		p.lex.Next()
		return p.finishExpr(start, &jsast.EBoolean{Value: false})
	case p.isIdent("null"):
		p.lex.Next()
		return p.finishExpr(start, &jsast.ENull{})
	case p.isIdent("undefined"):
		p.lex.Next()
		return p.finishExpr(start, &jsast.EUndefined{})
	case p.isIdent("this"):
		p.lex.Next()
		return p.finishExpr(start, &jsast.EThis{})
	case p.isIdent("super"):
		p.lex.Next()
		return p.finishExpr(start, &jsast.ESuper{})
	case p.isIdent("function"):
		fn := p.parseFunctionDecl(false)
		return p.finishExpr(start, &jsast.EFunction{Name: fn.Name, Fn: fn.Fn})
	case p.isIdent("async") && p.peekIsFunction():
		p.lex.Next()
		fn := p.parseFunctionDecl(true)
		return p.finishExpr(start, &jsast.EFunction{Name: fn.Name, Fn: fn.Fn})
	case p.isIdent("class"):
		cls := p.parseClassDecl()
		return p.finishExpr(start, &jsast.EClass{Name: cls.Name, Extends: cls.Extends, BodyRange: cls.BodyRange})
	case p.isIdent("import"):
		p.lex.Next()
		if p.at(jslexer.TDot) {
			p.lex.Next()
			p.lex.Next() // "meta"
			return p.finishExpr(start, &jsast.EIdentifier{Name: "import.meta"})
		}
		args := p.parseArgs()
		var arg jsast.Expr
		if len(args) > 0 {
			arg = args[0]
		}
		return p.finishExpr(start, &jsast.EImportCall{Arg: arg})
	case p.at(jslexer.TIdentifier):
		name := p.lex.Raw
		p.lex.Next()
		return p.finishExpr(start, &jsast.EIdentifier{Name: name})
	case p.at(jslexer.TOpenBracket):
		return p.parseArrayLiteral(start)
	case p.at(jslexer.TOpenBrace):
		return p.parseObjectLiteral(start)
	case p.at(jslexer.TOpenParen):
		return p.parseParenOrArrow(start)
	case p.at(jslexer.TDotDotDot):
		p.lex.Next()
		v := p.parseAssign(0)
		return p.finishExpr(start, &jsast.ESpread{Value: v})
	default:
		p.fail("unexpected token in expression")
		return jsast.Expr{}
	}
}

func (p *Parser) peekIsFunction() bool {
	saved := *p.lex
	p.lex.Next()
	ok := p.isIdent("function") && !p.lex.HadNewlineBefore
	*p.lex = saved
	return ok
}

func (p *Parser) parseArrayLiteral(start logger.Loc) jsast.Expr {
	p.lex.Next() // [
	var items []jsast.Expr
	for !p.at(jslexer.TCloseBracket) {
		if p.at(jslexer.TComma) {
			items = append(items, jsast.Expr{Data: &jsast.EMissing{}})
			p.lex.Next()
			continue
		}
		items = append(items, p.parseAssign(0))
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	p.expect(jslexer.TCloseBracket, "]")
	return p.finishExpr(start, &jsast.EArray{Items: items})
}

func (p *Parser) parseObjectLiteral(start logger.Loc) jsast.Expr {
	p.lex.Next() // {
	var props []jsast.Property
	for !p.at(jslexer.TCloseBrace) {
		if p.at(jslexer.TDotDotDot) {
			p.lex.Next()
			v := p.parseAssign(0)
			props = append(props, jsast.Property{Kind: jsast.PropSpread, Value: v})
		} else {
			props = append(props, p.parseObjectProperty())
		}
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	p.expect(jslexer.TCloseBrace, "}")
	return p.finishExpr(start, &jsast.EObject{Properties: props})
}

func (p *Parser) parseObjectProperty() jsast.Property {
	isAsync, isGen := false, false
	kind := jsast.PropInit
	if p.isIdent("get") || p.isIdent("set") {
		saved := *p.lex
		which := p.lex.Raw
		p.lex.Next()
		if !p.at(jslexer.TColon) && !p.at(jslexer.TComma) && !p.at(jslexer.TCloseBrace) && !p.at(jslexer.TOpenParen) {
			if which == "get" {
				kind = jsast.PropGet
			} else {
				kind = jsast.PropSet
			}
		} else {
			*p.lex = saved
		}
	}
	if p.isIdent("async") {
		saved := *p.lex
		p.lex.Next()
		if !p.at(jslexer.TColon) && !p.at(jslexer.TComma) && !p.at(jslexer.TCloseBrace) && !p.at(jslexer.TOpenParen) {
			isAsync = true
		} else {
			*p.lex = saved
		}
	}
	if p.at(jslexer.TAsterisk) {
		isGen = true
		p.lex.Next()
	}

	var key *jsast.Expr
	computed := false
	var keyName string
	if p.at(jslexer.TOpenBracket) {
		computed = true
		p.lex.Next()
		k := p.parseAssign(0)
		key = &k
		p.expect(jslexer.TCloseBracket, "]")
	} else if p.at(jslexer.TStringLiteral) {
		keyName = unquote(p.lex.Raw)
		k := jsast.Expr{Data: &jsast.EString{Raw: p.lex.Raw}}
		key = &k
		p.lex.Next()
	} else if p.at(jslexer.TNumericLiteral) {
		k := jsast.Expr{Data: &jsast.ENumber{Raw: p.lex.Raw}}
		key = &k
		p.lex.Next()
	} else {
		keyName = p.lex.Raw
		k := jsast.Expr{Data: &jsast.EIdentifier{Name: keyName}}
		key = &k
		p.lex.Next()
	}

	if kind != jsast.PropInit || p.at(jslexer.TOpenParen) {
		fn := p.parseFnTail(isAsync, isGen)
		if kind == jsast.PropInit {
			kind = jsast.PropMethod
		}
		return jsast.Property{Kind: kind, Key: key, Computed: computed, Value: jsast.Expr{Data: &jsast.EFunction{Fn: fn}}}
	}

	if p.at(jslexer.TColon) {
		p.lex.Next()
		v := p.parseAssign(0)
		return jsast.Property{Kind: jsast.PropInit, Key: key, Computed: computed, Value: v}
	}

	// Shorthand `{ name }` or `{ name = default }` (the latter only valid
	// inside a destructuring pattern, but we accept it here too since we
	// reinterpret parenthesized expressions as bindings for arrow params).
	var val jsast.Expr = jsast.Expr{Data: &jsast.EIdentifier{Name: keyName}}
	if p.at(jslexer.TEquals) {
		p.lex.Next()
		def := p.parseAssign(0)
		val = jsast.Expr{Data: &jsast.EAssign{Op: "=", Target: val, Value: def}}
	}
	return jsast.Property{Kind: jsast.PropInit, Key: key, Computed: computed, Value: val, Shorthand: true}
}

// parseParenOrArrow implements the classic cover-grammar trick: parse the
// parenthesized contents as ordinary comma-separated assignment
// expressions (which already accepts "ident = default" and "...rest" as
// valid expression shapes), then either fold them into arrow parameters if
// "=>" follows, or treat them as a parenthesized expression/sequence.
func (p *Parser) parseParenOrArrow(start logger.Loc) jsast.Expr {
	p.lex.Next() // (
	var items []jsast.Expr
	for !p.at(jslexer.TCloseParen) {
		if p.at(jslexer.TDotDotDot) {
			itemStart := p.loc()
			p.lex.Next()
			v := p.parseAssign(0)
			items = append(items, p.finishExpr(itemStart, &jsast.ESpread{Value: v}))
		} else {
			items = append(items, p.parseAssign(0))
		}
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	p.expect(jslexer.TCloseParen, ")")

	isAsync := false // tryParseArrowFromIdentifier marks the arrow async for the `async (...)` prefix
	if p.at(jslexer.TEqualsGreaterThan) {
		p.lex.Next()
		params := make([]jsast.Binding, len(items))
		for i, item := range items {
			params[i] = exprToBinding(item)
		}
		fn := p.parseArrowBody(params, isAsync)
		return p.finishExpr(start, &jsast.EArrow{Fn: fn})
	}

	if len(items) == 1 {
		return items[0]
	}
	return p.finishExpr(start, &jsast.ESequence{Exprs: items})
}

// exprToBinding reinterprets a cover-grammar expression item as a (shape
// only) parameter binding. It keeps the identifier name and, for `a = b`,
// the default value, which the identifier walker visits (arrow params are
// never part of the top-level definition map). Nested destructuring shape
// is flattened to BindIdentifier with an empty name, so defaults inside a
// destructured arrow parameter are not kept.
func exprToBinding(e jsast.Expr) jsast.Binding {
	switch d := e.Data.(type) {
	case *jsast.EIdentifier:
		return jsast.Binding{Kind: jsast.BindIdentifier, Name: d.Name, RestIndex: -1}
	case *jsast.EAssign:
		b := exprToBinding(d.Target)
		def := d.Value
		b.Default = &def
		return b
	case *jsast.ESpread:
		b := exprToBinding(d.Value)
		return b
	default:
		return jsast.Binding{Kind: jsast.BindIdentifier, RestIndex: -1}
	}
}

// parseTemplateFrom parses a template literal starting at the current
// TNoSubstitutionTemplateLiteral/TTemplateHead token, recursively parsing
// each "${...}" interpolation as a full expression so the identifier walker
// can descend into it. The lexer reports only the head up to "${"; this
// function parses the interpolation with the same parser until the
// closing "}" is the current token, then asks the lexer to rescan from
// there (RescanTemplateTail), since the lexer has no brace-nesting memory
// across Next() calls (mirroring the rescan-on-demand design the teacher
// uses for template continuations, simplified because we never need to
// reconstruct cooked string contents here).
func (p *Parser) parseTemplateFrom() *jsast.ETemplate {
	var exprs []jsast.Expr
	if p.at(jslexer.TNoSubstitutionTemplateLiteral) {
		p.lex.Next()
		return &jsast.ETemplate{}
	}
	for {
		p.lex.Next() // advance past "${" (current token was Head/Middle)
		e := p.parseExpr(0)
		exprs = append(exprs, e)
		if !p.at(jslexer.TCloseBrace) {
			p.fail("expected } to close template interpolation")
		}
		p.lex.RescanTemplateTail()
		if p.at(jslexer.TTemplateTail) {
			p.lex.Next()
			break
		}
		// Still TTemplateMiddle: another interpolation follows the loop.
	}
	return &jsast.ETemplate{Exprs: exprs}
}

func tokenText(t jslexer.T) string {
	switch t {
	case jslexer.TPlus:
		return "+"
	case jslexer.TMinus:
		return "-"
	case jslexer.TAsterisk:
		return "*"
	case jslexer.TSlash:
		return "/"
	case jslexer.TPercent:
		return "%"
	case jslexer.TAsteriskAsterisk:
		return "**"
	case jslexer.TAmpersandAmpersand:
		return "&&"
	case jslexer.TBarBar:
		return "||"
	case jslexer.TQuestionQuestion:
		return "??"
	case jslexer.TAmpersand:
		return "&"
	case jslexer.TBar:
		return "|"
	case jslexer.TCaret:
		return "^"
	case jslexer.TEqualsEquals:
		return "=="
	case jslexer.TEqualsEqualsEquals:
		return "==="
	case jslexer.TExclamationEquals:
		return "!="
	case jslexer.TExclamationEqualsEquals:
		return "!=="
	case jslexer.TLessThan:
		return "<"
	case jslexer.TLessThanEquals:
		return "<="
	case jslexer.TGreaterThan:
		return ">"
	case jslexer.TGreaterThanEquals:
		return ">="
	case jslexer.TLessThanLessThan:
		return "<<"
	case jslexer.TGreaterThanGreaterThan:
		return ">>"
	case jslexer.TGreaterThanGreaterThanGreaterThan:
		return ">>>"
	case jslexer.TExclamation:
		return "!"
	case jslexer.TTilde:
		return "~"
	case jslexer.TPlusPlus:
		return "++"
	case jslexer.TMinusMinus:
		return "--"
	default:
		return "?"
	}
}

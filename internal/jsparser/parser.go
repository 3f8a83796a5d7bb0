// Package jsparser implements the parser-adapter contract from spec.md §4.1:
// given source bytes it produces an AST with byte offsets for every node.
// It follows the teacher's internal/js_parser in spirit (a single Parser
// struct threading a Lexer, recursive-descent statement parsing, a
// precedence-climbing expression parser) but is intentionally much smaller:
// no bundling, no scope resolution, no minification — only the shapes the
// five downstream subsystems (helper detector, classifier, fingerprinter,
// definition map, reference graph) actually inspect.
package jsparser

import (
	"fmt"

	"github.com/cversek/js-demini/internal/jsast"
	"github.com/cversek/js-demini/internal/jslexer"
	"github.com/cversek/js-demini/internal/logger"
)

type Parser struct {
	log    *logger.Log
	source *logger.Source
	lex    *jslexer.Lexer
}

// Parse runs the parser over source.Contents and returns the top-level
// program. A parse failure is fatal per spec.md §7: it returns a non-nil
// error carrying the position and never attempts recovery.
func Parse(log *logger.Log, source *logger.Source) (prog *jsast.Program, err error) {
	p := &Parser{log: log, source: source}

	defer func() {
		if r := recover(); r != nil {
			at := source.PrettyPath
			if p.lex != nil {
				line, col := source.LineColumn(p.lex.Loc().Start)
				at = fmt.Sprintf("%s:%d:%d", source.PrettyPath, line, col)
			}
			if _, ok := r.(jslexer.LexerPanic); ok {
				if msgs := log.Done(); len(msgs) > 0 && msgs[len(msgs)-1].Data.Location != nil {
					loc := msgs[len(msgs)-1].Data.Location
					at = fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
				}
				err = fmt.Errorf("parse error in %s", at)
				return
			}
			if pe, ok := r.(parsePanic); ok {
				err = fmt.Errorf("parse error in %s: %s", at, pe.msg)
				return
			}
			panic(r)
		}
	}()

	p.lex = jslexer.NewLexer(log, source)
	stmts := p.parseStmtList(jslexer.TEndOfFile)
	return &jsast.Program{Stmts: stmts}, nil
}

type parsePanic struct{ msg string }

func (p *Parser) fail(msg string) { panic(parsePanic{msg: msg}) }

func (p *Parser) at(t jslexer.T) bool { return p.lex.Token == t }

func (p *Parser) expect(t jslexer.T, what string) {
	if p.lex.Token != t {
		p.fail("expected " + what)
	}
	p.lex.Next()
}

func (p *Parser) loc() logger.Loc { return p.lex.Loc() }

func (p *Parser) isIdent(name string) bool {
	return p.at(jslexer.TIdentifier) && p.lex.Raw == name
}

// finish builds a Stmt range from start to the end of the last token the
// parser consumed (jslexer.Lexer.PrevEnd tracks exactly that).
func (p *Parser) finish(start logger.Loc, data jsast.S) jsast.Stmt {
	end := int32(p.lex.PrevEnd)
	return jsast.Stmt{Range: jsast.Range{Loc: jsast.Loc{Start: start.Start}, Len: end - start.Start}, Data: data}
}

func (p *Parser) finishExpr(start logger.Loc, data jsast.E) jsast.Expr {
	end := int32(p.lex.PrevEnd)
	return jsast.Expr{Range: jsast.Range{Loc: jsast.Loc{Start: start.Start}, Len: end - start.Start}, Data: data}
}

func (p *Parser) eatSemicolon() {
	if p.at(jslexer.TSemicolon) {
		p.lex.Next()
	}
	// Automatic semicolon insertion (newline / "}" / EOF) is not enforced
	// beyond this; bundler output is machine-generated and reliably
	// semicolon-terminated, per the class of input spec.md targets.
}

func (p *Parser) parseStmtList(end jslexer.T) []jsast.Stmt {
	var stmts []jsast.Stmt
	for p.lex.Token != end {
		stmts = append(stmts, p.parseStmt())
	}
	return stmts
}

func (p *Parser) parseStmt() jsast.Stmt {
	start := p.loc()

	if p.at(jslexer.TSemicolon) {
		p.lex.Next()
		return p.finish(start, &jsast.SEmpty{})
	}

	if p.at(jslexer.TOpenBrace) {
		p.lex.Next()
		body := p.parseStmtList(jslexer.TCloseBrace)
		p.expect(jslexer.TCloseBrace, "}")
		return p.finish(start, &jsast.SBlock{Stmts: body})
	}

	if p.at(jslexer.TIdentifier) {
		switch p.lex.Raw {
		case "var", "let", "const":
			kind := p.lex.Raw
			decl := p.parseVarDecl(kind)
			p.eatSemicolon()
			return p.finish(start, decl)
		case "function":
			return p.finish(start, p.parseFunctionDecl(false))
		case "async":
			savedPos := *p.lex
			p.lex.Next()
			if p.isIdent("function") {
				return p.finish(start, p.parseFunctionDecl(true))
			}
			*p.lex = savedPos
		case "class":
			return p.finish(start, p.parseClassDecl())
		case "if":
			return p.finish(start, p.parseIf())
		case "for":
			return p.finish(start, p.parseFor())
		case "while":
			return p.finish(start, p.parseWhile())
		case "do":
			return p.finish(start, p.parseDoWhile())
		case "try":
			return p.finish(start, p.parseTry())
		case "switch":
			return p.finish(start, p.parseSwitch())
		case "return":
			p.lex.Next()
			var val *jsast.Expr
			if !p.at(jslexer.TSemicolon) && !p.at(jslexer.TCloseBrace) && !p.at(jslexer.TEndOfFile) && !p.lex.HadNewlineBefore {
				e := p.parseExpr(0)
				val = &e
			}
			p.eatSemicolon()
			return p.finish(start, &jsast.SReturn{Value: val})
		case "throw":
			p.lex.Next()
			e := p.parseExpr(0)
			p.eatSemicolon()
			return p.finish(start, &jsast.SThrow{Value: e})
		case "break":
			p.lex.Next()
			lbl := p.maybeLabel()
			p.eatSemicolon()
			return p.finish(start, &jsast.SBreak{Label: lbl})
		case "continue":
			p.lex.Next()
			lbl := p.maybeLabel()
			p.eatSemicolon()
			return p.finish(start, &jsast.SContinue{Label: lbl})
		case "debugger":
			p.lex.Next()
			p.eatSemicolon()
			return p.finish(start, &jsast.SDebugger{})
		case "import":
			// "import(" is a dynamic-import expression, not a declaration.
			saved := *p.lex
			p.lex.Next()
			if p.at(jslexer.TOpenParen) || p.at(jslexer.TDot) {
				*p.lex = saved
			} else {
				*p.lex = saved
				return p.finish(start, p.parseImport())
			}
		case "export":
			return p.finish(start, p.parseExport())
		}

		// Labeled statement: IDENT ":" stmt.
		name := p.lex.Raw
		saved := *p.lex
		p.lex.Next()
		if p.at(jslexer.TColon) && !jslexer.IsKeyword(name) {
			p.lex.Next()
			body := p.parseStmt()
			return p.finish(start, &jsast.SLabel{Name: name, Body: body})
		}
		*p.lex = saved
	}

	e := p.parseExpr(0)
	p.eatSemicolon()
	return p.finish(start, &jsast.SExpr{Value: e})
}

func (p *Parser) maybeLabel() *string {
	if p.at(jslexer.TIdentifier) && !p.lex.HadNewlineBefore && !jslexer.IsKeyword(p.lex.Raw) {
		name := p.lex.Raw
		p.lex.Next()
		return &name
	}
	return nil
}

// --- Variable declarations -------------------------------------------------

func (p *Parser) parseVarDecl(kind string) *jsast.SVar {
	p.lex.Next() // consume var/let/const
	var k jsast.SVarKind
	switch kind {
	case "let":
		k = jsast.VarLet
	case "const":
		k = jsast.VarConst
	default:
		k = jsast.VarVar
	}
	var decls []jsast.Declarator
	for {
		b := p.parseBinding()
		var init *jsast.Expr
		if p.at(jslexer.TEquals) {
			p.lex.Next()
			e := p.parseAssign(0)
			init = &e
		}
		decls = append(decls, jsast.Declarator{Binding: b, Init: init})
		if p.at(jslexer.TComma) {
			p.lex.Next()
			continue
		}
		break
	}
	return &jsast.SVar{Kind: k, Decls: decls}
}

func (p *Parser) parseBinding() jsast.Binding {
	switch {
	case p.at(jslexer.TIdentifier):
		name := p.lex.Raw
		p.lex.Next()
		return jsast.Binding{Kind: jsast.BindIdentifier, Name: name, RestIndex: -1}
	case p.at(jslexer.TOpenBrace):
		return p.parseObjectBinding()
	case p.at(jslexer.TOpenBracket):
		return p.parseArrayBinding()
	default:
		p.fail("expected a binding")
		return jsast.Binding{}
	}
}

func (p *Parser) parseObjectBinding() jsast.Binding {
	p.lex.Next() // {
	var props []jsast.ObjectBindingProperty
	for !p.at(jslexer.TCloseBrace) {
		if p.at(jslexer.TDotDotDot) {
			p.lex.Next()
			rest := p.parseBinding()
			props = append(props, jsast.ObjectBindingProperty{IsRest: true, Value: rest})
		} else {
			computed := false
			var key string
			if p.at(jslexer.TOpenBracket) {
				computed = true
				p.lex.Next()
				p.parseAssign(0)
				p.expect(jslexer.TCloseBracket, "]")
			} else {
				key = p.lex.Raw
				p.lex.Next()
			}
			var value jsast.Binding
			if p.at(jslexer.TColon) {
				p.lex.Next()
				value = p.parseBinding()
			} else {
				value = jsast.Binding{Kind: jsast.BindIdentifier, Name: key, RestIndex: -1}
			}
			if p.at(jslexer.TEquals) {
				p.lex.Next()
				def := p.parseAssign(0)
				value.Default = &def
			}
			props = append(props, jsast.ObjectBindingProperty{Key: key, Value: value, Computed: computed})
		}
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	p.expect(jslexer.TCloseBrace, "}")
	return jsast.Binding{Kind: jsast.BindObject, Properties: props, RestIndex: -1}
}

func (p *Parser) parseArrayBinding() jsast.Binding {
	p.lex.Next() // [
	var items []jsast.Binding
	restIndex := -1
	for !p.at(jslexer.TCloseBracket) {
		if p.at(jslexer.TComma) {
			items = append(items, jsast.Binding{Kind: jsast.BindMissing, RestIndex: -1})
			p.lex.Next()
			continue
		}
		if p.at(jslexer.TDotDotDot) {
			p.lex.Next()
			restIndex = len(items)
			items = append(items, p.parseBinding())
		} else {
			b := p.parseBinding()
			if p.at(jslexer.TEquals) {
				p.lex.Next()
				def := p.parseAssign(0)
				b.Default = &def
			}
			items = append(items, b)
		}
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	p.expect(jslexer.TCloseBracket, "]")
	return jsast.Binding{Kind: jsast.BindArray, Items: items, RestIndex: restIndex}
}

// --- Functions & classes ----------------------------------------------------

func (p *Parser) parseFunctionDecl(isAsync bool) *jsast.SFunction {
	p.lex.Next() // function
	isGen := false
	if p.at(jslexer.TAsterisk) {
		isGen = true
		p.lex.Next()
	}
	var name *string
	nameRange := jsast.Range{}
	if p.at(jslexer.TIdentifier) {
		n := p.lex.Raw
		name = &n
		nameRange = jsast.Range{Loc: jsast.Loc{Start: p.loc().Start}, Len: int32(len(n))}
		p.lex.Next()
	}
	fn := p.parseFnTail(isAsync, isGen)
	return &jsast.SFunction{Name: name, NameRange: nameRange, Fn: fn}
}

func (p *Parser) parseFnTail(isAsync, isGen bool) jsast.Fn {
	p.expect(jslexer.TOpenParen, "(")
	var params []jsast.Binding
	for !p.at(jslexer.TCloseParen) {
		if p.at(jslexer.TDotDotDot) {
			p.lex.Next()
		}
		param := p.parseBinding()
		if p.at(jslexer.TEquals) {
			p.lex.Next()
			def := p.parseAssign(0)
			param.Default = &def
		}
		params = append(params, param)
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	p.expect(jslexer.TCloseParen, ")")
	p.expect(jslexer.TOpenBrace, "{")
	body := p.parseStmtList(jslexer.TCloseBrace)
	p.expect(jslexer.TCloseBrace, "}")
	return jsast.Fn{Params: params, Body: body, IsAsync: isAsync, IsGen: isGen}
}

func (p *Parser) parseClassDecl() *jsast.SClass {
	p.lex.Next() // class
	var name *string
	nameRange := jsast.Range{}
	if p.at(jslexer.TIdentifier) && p.lex.Raw != "extends" {
		n := p.lex.Raw
		name = &n
		nameRange = jsast.Range{Loc: jsast.Loc{Start: p.loc().Start}, Len: int32(len(n))}
		p.lex.Next()
	}
	var extends *jsast.Expr
	if p.isIdent("extends") {
		p.lex.Next()
		e := p.parseAssign(0)
		extends = &e
	}
	bodyStart := p.loc()
	p.skipBalanced(jslexer.TOpenBrace, jslexer.TCloseBrace)
	bodyRange := jsast.Range{Loc: jsast.Loc{Start: bodyStart.Start}, Len: int32(p.lex.PrevEnd) - bodyStart.Start}
	return &jsast.SClass{Name: name, NameRange: nameRange, Extends: extends, BodyRange: bodyRange}
}

// skipBalanced consumes tokens from the current `open` token (which must be
// the current token) through its matching `close`, tracking nesting depth.
// Used for class bodies, whose members (methods, fields, computed keys,
// private names) are irrelevant to every downstream subsystem: nothing in
// spec.md inspects class internals beyond the class's own name and span.
func (p *Parser) skipBalanced(open, close jslexer.T) {
	p.expect(open, "{")
	depth := 1
	for depth > 0 {
		if p.at(jslexer.TEndOfFile) {
			p.fail("unexpected end of file")
		}
		if p.at(open) {
			depth++
		} else if p.at(close) {
			depth--
		}
		p.lex.Next()
	}
}

// --- Control flow ------------------------------------------------------------

func (p *Parser) parseIf() *jsast.SIf {
	p.lex.Next() // if
	p.expect(jslexer.TOpenParen, "(")
	test := p.parseExpr(0)
	p.expect(jslexer.TCloseParen, ")")
	yes := p.parseStmt()
	var no *jsast.Stmt
	if p.isIdent("else") {
		p.lex.Next()
		n := p.parseStmt()
		no = &n
	}
	return &jsast.SIf{Test: test, Yes: yes, No: no}
}

func (p *Parser) parseFor() *jsast.SFor {
	p.lex.Next() // for
	p.expect(jslexer.TOpenParen, "(")

	var init *jsast.Stmt
	if !p.at(jslexer.TSemicolon) {
		start := p.loc()
		if p.isIdent("var") || p.isIdent("let") || p.isIdent("const") {
			decl := p.parseVarDecl(p.lex.Raw)
			s := p.finish(start, decl)
			init = &s
		} else {
			e := p.parseExpr(exprNoIn)
			s := p.finish(start, &jsast.SExpr{Value: e})
			init = &s
		}
	}

	if p.isIdent("in") || p.isIdent("of") {
		p.lex.Next()
		object := p.parseExpr(0)
		p.expect(jslexer.TCloseParen, ")")
		body := p.parseStmt()
		return &jsast.SFor{Init: init, Object: &object, Body: body}
	}

	p.expect(jslexer.TSemicolon, ";")
	var test *jsast.Expr
	if !p.at(jslexer.TSemicolon) {
		e := p.parseExpr(0)
		test = &e
	}
	p.expect(jslexer.TSemicolon, ";")
	var bump *jsast.Expr
	if !p.at(jslexer.TCloseParen) {
		e := p.parseExpr(0)
		bump = &e
	}
	p.expect(jslexer.TCloseParen, ")")
	body := p.parseStmt()
	return &jsast.SFor{Init: init, Test: test, Bump: bump, Body: body}
}

func (p *Parser) parseWhile() *jsast.SWhile {
	p.lex.Next()
	p.expect(jslexer.TOpenParen, "(")
	test := p.parseExpr(0)
	p.expect(jslexer.TCloseParen, ")")
	body := p.parseStmt()
	return &jsast.SWhile{Test: test, Body: body}
}

func (p *Parser) parseDoWhile() *jsast.SDoWhile {
	p.lex.Next()
	body := p.parseStmt()
	if !p.isIdent("while") {
		p.fail("expected while")
	}
	p.lex.Next()
	p.expect(jslexer.TOpenParen, "(")
	test := p.parseExpr(0)
	p.expect(jslexer.TCloseParen, ")")
	p.eatSemicolon()
	return &jsast.SDoWhile{Body: body, Test: test}
}

func (p *Parser) parseTry() *jsast.STry {
	p.lex.Next()
	p.expect(jslexer.TOpenBrace, "{")
	body := p.parseStmtList(jslexer.TCloseBrace)
	p.expect(jslexer.TCloseBrace, "}")

	var cc *jsast.CatchClause
	if p.isIdent("catch") {
		p.lex.Next()
		var param *jsast.Binding
		if p.at(jslexer.TOpenParen) {
			p.lex.Next()
			b := p.parseBinding()
			param = &b
			p.expect(jslexer.TCloseParen, ")")
		}
		p.expect(jslexer.TOpenBrace, "{")
		cbody := p.parseStmtList(jslexer.TCloseBrace)
		p.expect(jslexer.TCloseBrace, "}")
		cc = &jsast.CatchClause{Param: param, Body: cbody}
	}

	var fin *[]jsast.Stmt
	if p.isIdent("finally") {
		p.lex.Next()
		p.expect(jslexer.TOpenBrace, "{")
		fbody := p.parseStmtList(jslexer.TCloseBrace)
		p.expect(jslexer.TCloseBrace, "}")
		fin = &fbody
	}

	return &jsast.STry{Body: body, Catch: cc, Finally: fin}
}

func (p *Parser) parseSwitch() *jsast.SSwitch {
	p.lex.Next()
	p.expect(jslexer.TOpenParen, "(")
	test := p.parseExpr(0)
	p.expect(jslexer.TCloseParen, ")")
	p.expect(jslexer.TOpenBrace, "{")
	var cases []jsast.SwitchCase
	for !p.at(jslexer.TCloseBrace) {
		var c jsast.SwitchCase
		if p.isIdent("case") {
			p.lex.Next()
			e := p.parseExpr(0)
			c.Test = &e
		} else if p.isIdent("default") {
			p.lex.Next()
		} else {
			p.fail("expected case or default")
		}
		p.expect(jslexer.TColon, ":")
		for !p.isIdent("case") && !p.isIdent("default") && !p.at(jslexer.TCloseBrace) {
			c.Body = append(c.Body, p.parseStmt())
		}
		cases = append(cases, c)
	}
	p.expect(jslexer.TCloseBrace, "}")
	return &jsast.SSwitch{Test: test, Cases: cases}
}

// --- Imports & exports -------------------------------------------------------

func (p *Parser) parseImport() *jsast.SImport {
	p.lex.Next() // import
	var specs []jsast.ImportSpecifier

	if p.at(jslexer.TStringLiteral) {
		path := unquote(p.lex.Raw)
		p.lex.Next()
		p.eatSemicolon()
		return &jsast.SImport{Path: path}
	}

	if p.at(jslexer.TIdentifier) && !p.isIdent("from") {
		name := p.lex.Raw
		specs = append(specs, jsast.ImportSpecifier{Local: name, Imported: "default"})
		p.lex.Next()
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	if p.at(jslexer.TAsterisk) {
		p.lex.Next()
		if p.isIdent("as") {
			p.lex.Next()
		}
		local := p.lex.Raw
		p.lex.Next()
		specs = append(specs, jsast.ImportSpecifier{Local: local, Imported: "*"})
	} else if p.at(jslexer.TOpenBrace) {
		p.lex.Next()
		for !p.at(jslexer.TCloseBrace) {
			imported := p.lex.Raw
			p.lex.Next()
			local := imported
			if p.isIdent("as") {
				p.lex.Next()
				local = p.lex.Raw
				p.lex.Next()
			}
			specs = append(specs, jsast.ImportSpecifier{Local: local, Imported: imported})
			if p.at(jslexer.TComma) {
				p.lex.Next()
			}
		}
		p.expect(jslexer.TCloseBrace, "}")
	}

	var path string
	if p.isIdent("from") {
		p.lex.Next()
		path = unquote(p.lex.Raw)
		p.lex.Next()
	}
	p.eatSemicolon()
	return &jsast.SImport{Specifiers: specs, Path: path}
}

func (p *Parser) parseExport() jsast.S {
	p.lex.Next() // export

	if p.isIdent("default") {
		p.lex.Next()
		if p.isIdent("function") {
			fn := p.parseFunctionDecl(false)
			return &jsast.SExportDefault{Decl: fn}
		}
		if p.isIdent("async") {
			saved := *p.lex
			p.lex.Next()
			if p.isIdent("function") {
				fn := p.parseFunctionDecl(true)
				return &jsast.SExportDefault{Decl: fn}
			}
			*p.lex = saved
		}
		if p.isIdent("class") {
			cls := p.parseClassDecl()
			return &jsast.SExportDefault{Decl: cls}
		}
		e := p.parseAssign(0)
		p.eatSemicolon()
		return &jsast.SExportDefault{Value: &e}
	}

	if p.isIdent("function") || p.isIdent("class") ||
		p.isIdent("var") || p.isIdent("let") || p.isIdent("const") {
		var decl jsast.S
		switch {
		case p.isIdent("function"):
			decl = p.parseFunctionDecl(false)
		case p.isIdent("class"):
			decl = p.parseClassDecl()
		default:
			decl = p.parseVarDecl(p.lex.Raw)
			p.eatSemicolon()
		}
		return &jsast.SExportNamed{Decl: decl}
	}

	if p.at(jslexer.TAsterisk) {
		p.lex.Next()
		var as *string
		if p.isIdent("as") {
			p.lex.Next()
			n := p.lex.Raw
			as = &n
			p.lex.Next()
		}
		if p.isIdent("from") {
			p.lex.Next()
		}
		path := unquote(p.lex.Raw)
		p.lex.Next()
		p.eatSemicolon()
		return &jsast.SExportAll{Path: path, As: as}
	}

	var specs []jsast.ExportSpecifier
	p.expect(jslexer.TOpenBrace, "{")
	for !p.at(jslexer.TCloseBrace) {
		local := p.lex.Raw
		p.lex.Next()
		exported := local
		if p.isIdent("as") {
			p.lex.Next()
			exported = p.lex.Raw
			p.lex.Next()
		}
		specs = append(specs, jsast.ExportSpecifier{Local: local, Exported: exported})
		if p.at(jslexer.TComma) {
			p.lex.Next()
		}
	}
	p.expect(jslexer.TCloseBrace, "}")
	var from *string
	if p.isIdent("from") {
		p.lex.Next()
		path := unquote(p.lex.Raw)
		from = &path
		p.lex.Next()
	}
	p.eatSemicolon()
	return &jsast.SExportNamed{Specifiers: specs, FromPath: from}
}

func unquote(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

package jsast

// WalkIdentifiers visits every Identifier that appears in a reference
// position within stmts, calling fn for each one. It is a flat walk: it
// recurses into nested function/arrow bodies and block-structured control
// flow without tracking lexical scope, matching the flat-scope
// approximation the reference graph is built on. Binding/declaration
// positions (declarator names, parameter names, catch params, function
// and class names, non-computed member/property/object keys) are not
// reference positions and are skipped.
func WalkIdentifiers(stmts []Stmt, fn func(name string)) {
	w := &identWalker{fn: fn}
	w.walkStmts(stmts)
}

type identWalker struct {
	fn func(name string)
}

func (w *identWalker) walkStmts(stmts []Stmt) {
	for _, s := range stmts {
		w.walkStmt(s)
	}
}

func (w *identWalker) walkStmt(s Stmt) {
	switch d := s.Data.(type) {
	case *SVar:
		for _, decl := range d.Decls {
			w.walkBindingDefaults(decl.Binding)
			if decl.Init != nil {
				w.walkExpr(*decl.Init)
			}
		}
	case *SFunction:
		w.walkFn(d.Fn)
	case *SClass:
		if d.Extends != nil {
			w.walkExpr(*d.Extends)
		}
	case *SExpr:
		w.walkExpr(d.Value)
	case *SImport:
		// specifiers bind names; nothing to walk
	case *SExportNamed:
		if d.Decl != nil {
			w.walkStmt(Stmt{Data: d.Decl})
		}
	case *SExportDefault:
		if d.Decl != nil {
			w.walkStmt(Stmt{Data: d.Decl})
		}
		if d.Value != nil {
			w.walkExpr(*d.Value)
		}
	case *SExportAll:
		// nothing
	case *SIf:
		w.walkExpr(d.Test)
		w.walkStmt(d.Yes)
		if d.No != nil {
			w.walkStmt(*d.No)
		}
	case *SFor:
		if d.Init != nil {
			w.walkStmt(*d.Init)
		}
		if d.Test != nil {
			w.walkExpr(*d.Test)
		}
		if d.Bump != nil {
			w.walkExpr(*d.Bump)
		}
		if d.Object != nil {
			w.walkExpr(*d.Object)
		}
		w.walkStmt(d.Body)
	case *SWhile:
		w.walkExpr(d.Test)
		w.walkStmt(d.Body)
	case *SDoWhile:
		w.walkStmt(d.Body)
		w.walkExpr(d.Test)
	case *STry:
		w.walkStmts(d.Body)
		if d.Catch != nil {
			w.walkStmts(d.Catch.Body)
		}
		if d.Finally != nil {
			w.walkStmts(*d.Finally)
		}
	case *SSwitch:
		w.walkExpr(d.Test)
		for _, c := range d.Cases {
			if c.Test != nil {
				w.walkExpr(*c.Test)
			}
			w.walkStmts(c.Body)
		}
	case *SBlock:
		w.walkStmts(d.Stmts)
	case *SReturn:
		if d.Value != nil {
			w.walkExpr(*d.Value)
		}
	case *SThrow:
		w.walkExpr(d.Value)
	case *SLabel:
		w.walkStmt(d.Body)
	case *SEmpty, *SBreak, *SContinue, *SDebugger, *SDirective:
		// nothing
	}
}

func (w *identWalker) walkFn(fn Fn) {
	// parameter default values are reference positions; parameter names
	// themselves are bindings and are skipped.
	for _, p := range fn.Params {
		w.walkBindingDefaults(p)
	}
	if fn.ArrowExpr != nil {
		w.walkExpr(*fn.ArrowExpr)
		return
	}
	w.walkStmts(fn.Body)
}

// walkBindingDefaults descends into a binding pattern only far enough to
// find default-value expressions (which are reference positions); it
// never reports the binding names themselves.
func (w *identWalker) walkBindingDefaults(b Binding) {
	if b.Default != nil {
		w.walkExpr(*b.Default)
	}
	switch b.Kind {
	case BindObject:
		for _, prop := range b.Properties {
			if prop.Computed {
				// computed keys are stored as part of Value's shape in
				// this AST only when Computed; we have no expr to walk
				// here since Key is a plain string, so nothing to do.
			}
			w.walkBindingDefaults(prop.Value)
		}
	case BindArray:
		for _, item := range b.Items {
			w.walkBindingDefaults(item)
		}
	}
}

func (w *identWalker) walkExpr(e Expr) {
	switch d := e.Data.(type) {
	case *EIdentifier:
		w.fn(d.Name)
	case *EArray:
		for _, item := range d.Items {
			w.walkExpr(item)
		}
	case *EObject:
		for _, prop := range d.Properties {
			if prop.Kind == PropSpread {
				w.walkExpr(prop.Value)
				continue
			}
			if prop.Computed && prop.Key != nil {
				w.walkExpr(*prop.Key)
			}
			w.walkExpr(prop.Value)
		}
	case *EFunction:
		w.walkFn(d.Fn)
	case *EArrow:
		w.walkFn(d.Fn)
	case *EClass:
		if d.Extends != nil {
			w.walkExpr(*d.Extends)
		}
	case *ECall:
		w.walkExpr(d.Target)
		for _, a := range d.Args {
			w.walkExpr(a)
		}
	case *ENew:
		w.walkExpr(d.Target)
		for _, a := range d.Args {
			w.walkExpr(a)
		}
	case *EMember:
		w.walkExpr(d.Target)
		if d.Computed && d.PropertyExpr != nil {
			w.walkExpr(*d.PropertyExpr)
		}
		// non-computed Property is a plain string, not walked.
	case *EUnary:
		w.walkExpr(d.Value)
	case *EBinary:
		w.walkExpr(d.Left)
		w.walkExpr(d.Right)
	case *EAssign:
		w.walkExpr(d.Target)
		w.walkExpr(d.Value)
	case *EConditional:
		w.walkExpr(d.Test)
		w.walkExpr(d.Yes)
		w.walkExpr(d.No)
	case *ESequence:
		for _, x := range d.Exprs {
			w.walkExpr(x)
		}
	case *ESpread:
		w.walkExpr(d.Value)
	case *EYield:
		if d.Value != nil {
			w.walkExpr(*d.Value)
		}
	case *EAwait:
		w.walkExpr(d.Value)
	case *EImportCall:
		w.walkExpr(d.Arg)
	case *ETemplate:
		for _, x := range d.Exprs {
			w.walkExpr(x)
		}
	case *EMissing, *ENumber, *EString, *EBigInt, *ERegExp, *EBoolean, *ENull, *EUndefined, *EThis, *ESuper:
		// no children
	}
}

package bytecode

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/values"
)

// Compiler lowers an internal/ast tree into a Chunk, mirroring
// internal/eval's statement/expression evaluation exactly but
// producing a flat instruction stream instead of walking the tree at
// run time. One Compiler compiles exactly one Chunk (the top-level
// program or a single function body) — a nested FunctionLiteral gets
// its own fresh Compiler via compileFunctionProto.
type Compiler struct {
	chunk *Chunk

	// blockDepth tracks how many block-stack entries (with/enum/
	// try-catch/try-finally) are open at the current point of
	// compilation — every END instruction names the depth it should
	// unwind to, so the compiler has to track this statically the
	// same way frame.blocks tracks it dynamically.
	blockDepth int

	finallyStack []*openFinally
	targets      []*breakable
	pendingLabel string

	// currentLine is the source line of the statement currently being
	// compiled, stamped onto every instruction emitted while compiling
	// it (Chunk.Lines) — frame.stampThrowLine reads it back off the
	// instruction that triggered an uncaught throw, for spec.md §4.3/
	// §7's `<file>:line: ` error location.
	currentLine int
}

// openFinally records a finally body the compiler must inline at
// every statically-known exit point that crosses it (return, break,
// continue) — see compileUnwindTo.
type openFinally struct {
	body              *ast.BlockStatement
	blockDepthAtEntry int
}

// breakable is one break/continue target: every loop and switch pushes
// one, as does a labelled statement wrapping any other kind of body.
// break/continue sites don't know the target instruction address yet
// when compiled, so they record a placeholder jump index here and the
// target statement patches every one once its own end is reached.
type breakable struct {
	label      string
	isLoop     bool
	blockDepth int

	breakPatches    []int
	continuePatches []int
}

// Compile lowers an entire program to its top-level Chunk.
func Compile(prog *ast.Program, source string) *Chunk {
	c := &Compiler{chunk: newChunk(source)}
	c.compileHoist(prog.Statements)
	c.compileStatements(prog.Statements)
	c.emitB(END, 0)
	return c.chunk
}

// compileFunctionProto lowers a FunctionLiteral's body to its own
// Chunk plus the metadata makeFunction needs to build a callable
// Function object.
func compileFunctionProto(lit *ast.FunctionLiteral, source string) *FuncProto {
	c := &Compiler{chunk: newChunk(source)}
	c.compileHoist(lit.Body.Statements)
	c.compileStatements(lit.Body.Statements)
	c.emitB(END, 0)

	params := make([]string, len(lit.Parameters))
	for i, p := range lit.Parameters {
		params[i] = p.Name
	}
	name := ""
	if lit.Name != nil {
		name = lit.Name.Name
	}
	return &FuncProto{Name: name, Params: params, Chunk: c.chunk}
}

// --- emit helpers ---

func (c *Compiler) emit(instr Instruction) int {
	c.chunk.Code = append(c.chunk.Code, instr)
	c.chunk.Lines = append(c.chunk.Lines, c.currentLine)
	return len(c.chunk.Code) - 1
}

func (c *Compiler) emitOp(op Op) int { return c.emit(MakeSimpleInstruction(op)) }

func (c *Compiler) emitB(op Op, b uint16) int { return c.emit(MakeInstructionB(op, b)) }

func (c *Compiler) emitA(op Op, a byte, b uint16) int { return c.emit(MakeInstruction(op, a, b)) }

func (c *Compiler) here() int { return len(c.chunk.Code) }

// emitJump emits a jump-family instruction with a placeholder offset,
// returning its index so patchJump/patchJumpTo can fill it in once the
// target is known.
func (c *Compiler) emitJump(op Op) int { return c.emitB(op, 0) }

// patchJump rewrites the jump at idx to target the current position,
// preserving whatever A operand it already carries (S_TRYC's catch
// name index).
func (c *Compiler) patchJump(idx int) { c.patchJumpTo(idx, c.here()) }

func (c *Compiler) patchJumpTo(idx, target int) {
	instr := c.chunk.Code[idx]
	offset := target - (idx + 1)
	c.chunk.Code[idx] = MakeInstruction(instr.OpCode(), instr.A(), uint16(int16(offset)))
}

// --- hoisting ---

// compileHoist mirrors internal/eval.Evaluator.hoist: every var name
// reachable from stmts without crossing a nested function boundary
// gets a VAR instruction (a no-op if the variable object already has
// the property), then every top-level function declaration gets a
// FUNC+PUTVAR — in that order, so a function declaration's value wins
// over a same-named hoisted var.
func (c *Compiler) compileHoist(stmts []ast.Statement) {
	for _, name := range collectVarNames(stmts) {
		c.emitB(LOC, c.chunk.addName(name))
		c.emitOp(VAR)
	}
	for _, decl := range collectFunctionDecls(stmts) {
		c.emitB(LOC, c.chunk.addName(decl.Function.Name.Name))
		c.compileFunctionLiteral(decl.Function)
		c.emitOp(PUTVAR)
	}
}

func collectFunctionDecls(stmts []ast.Statement) []*ast.FunctionDeclaration {
	var out []*ast.FunctionDeclaration
	for _, s := range stmts {
		if fd, ok := s.(*ast.FunctionDeclaration); ok {
			out = append(out, fd)
		}
	}
	return out
}

// collectVarNames walks every statement kind that can nest statements,
// collecting `var` names, but never descends into a FunctionLiteral's
// body — mirrors internal/eval.collectVarNames exactly.
func collectVarNames(stmts []ast.Statement) []string {
	var out []string
	var walkStmt func(ast.Statement)

	walkStmt = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.VariableStatement:
			for _, d := range s.Declarations {
				out = append(out, d.Name.Name)
			}
		case *ast.BlockStatement:
			for _, inner := range s.Statements {
				walkStmt(inner)
			}
		case *ast.IfStatement:
			walkStmt(s.Consequent)
			if s.Alternate != nil {
				walkStmt(s.Alternate)
			}
		case *ast.WhileStatement:
			walkStmt(s.Body)
		case *ast.DoWhileStatement:
			walkStmt(s.Body)
		case *ast.ForStatement:
			if vs, ok := s.Init.(*ast.VariableStatement); ok {
				walkStmt(vs)
			}
			walkStmt(s.Body)
		case *ast.ForInStatement:
			if vs, ok := s.Left.(*ast.VariableStatement); ok {
				walkStmt(vs)
			}
			walkStmt(s.Body)
		case *ast.WithStatement:
			walkStmt(s.Body)
		case *ast.LabelledStatement:
			walkStmt(s.Body)
		case *ast.SwitchStatement:
			for _, cs := range s.Cases {
				for _, inner := range cs.Consequent {
					walkStmt(inner)
				}
			}
		case *ast.TryStatement:
			walkStmt(s.Block)
			if s.Catch != nil {
				walkStmt(s.Catch.Body)
			}
			if s.Finally != nil {
				walkStmt(s.Finally)
			}
		}
	}

	for _, s := range stmts {
		walkStmt(s)
	}
	return out
}

// --- statements ---

func (c *Compiler) compileStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		c.compileStmt(s)
	}
}

func (c *Compiler) compileStmt(stmt ast.Statement) {
	c.currentLine = stmt.Pos().Line
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		c.compileExpr(s.Expression)
		c.emitOp(SETLAST)
	case *ast.BlockStatement:
		c.compileStatements(s.Statements)
	case *ast.EmptyStatement:
	case *ast.VariableStatement:
		c.compileVariableStatement(s)
	case *ast.FunctionDeclaration:
		// already instantiated and bound during hoisting.
	case *ast.IfStatement:
		c.compileIf(s)
	case *ast.WhileStatement:
		c.compileWhile(s)
	case *ast.DoWhileStatement:
		c.compileDoWhile(s)
	case *ast.ForStatement:
		c.compileFor(s)
	case *ast.ForInStatement:
		c.compileForIn(s)
	case *ast.BreakStatement:
		c.compileBreak(s)
	case *ast.ContinueStatement:
		c.compileContinue(s)
	case *ast.ReturnStatement:
		c.compileReturn(s)
	case *ast.WithStatement:
		c.compileWith(s)
	case *ast.SwitchStatement:
		c.compileSwitch(s)
	case *ast.ThrowStatement:
		c.compileThrow(s)
	case *ast.TryStatement:
		c.compileTryStatement(s)
	case *ast.DebuggerStatement:
	case *ast.LabelledStatement:
		c.compileLabelled(s)
	}
}

func (c *Compiler) compileVariableStatement(vs *ast.VariableStatement) {
	for _, d := range vs.Declarations {
		if d.Init == nil {
			continue
		}
		c.compileExpr(d.Init)
		c.emitB(LOC, c.chunk.addName(d.Name.Name))
		c.emitOp(EXCH)
		c.emitOp(PUTVAR)
	}
}

func (c *Compiler) compileIf(s *ast.IfStatement) {
	c.compileExpr(s.Condition)
	c.emitOp(NOT)
	elseJump := c.emitJump(B_TRUE)
	c.compileStmt(s.Consequent)
	if s.Alternate == nil {
		c.patchJump(elseJump)
		return
	}
	endJump := c.emitJump(B_ALWAYS)
	c.patchJump(elseJump)
	c.compileStmt(s.Alternate)
	c.patchJump(endJump)
}

func (c *Compiler) consumeLabel() string {
	l := c.pendingLabel
	c.pendingLabel = ""
	return l
}

func (c *Compiler) compileWhile(w *ast.WhileStatement) {
	label := c.consumeLabel()
	bk := &breakable{label: label, isLoop: true, blockDepth: c.blockDepth}
	c.targets = append(c.targets, bk)

	testPC := c.here()
	c.compileExpr(w.Condition)
	c.emitOp(NOT)
	skip := c.emitJump(B_TRUE)
	c.compileStmt(w.Body)
	for _, idx := range bk.continuePatches {
		c.patchJumpTo(idx, testPC)
	}
	back := c.emitJump(B_ALWAYS)
	c.patchJumpTo(back, testPC)
	c.patchJump(skip)
	for _, idx := range bk.breakPatches {
		c.patchJump(idx)
	}
	c.targets = c.targets[:len(c.targets)-1]
}

func (c *Compiler) compileDoWhile(d *ast.DoWhileStatement) {
	label := c.consumeLabel()
	bk := &breakable{label: label, isLoop: true, blockDepth: c.blockDepth}
	c.targets = append(c.targets, bk)

	bodyPC := c.here()
	c.compileStmt(d.Body)
	continuePC := c.here()
	for _, idx := range bk.continuePatches {
		c.patchJumpTo(idx, continuePC)
	}
	c.compileExpr(d.Condition)
	back := c.emitJump(B_TRUE)
	c.patchJumpTo(back, bodyPC)
	for _, idx := range bk.breakPatches {
		c.patchJump(idx)
	}
	c.targets = c.targets[:len(c.targets)-1]
}

func (c *Compiler) compileFor(f *ast.ForStatement) {
	label := c.consumeLabel()

	switch init := f.Init.(type) {
	case *ast.VariableStatement:
		c.compileVariableStatement(init)
	case ast.Expression:
		c.compileExpr(init)
		c.emitOp(POP)
	}

	bk := &breakable{label: label, isLoop: true, blockDepth: c.blockDepth}
	c.targets = append(c.targets, bk)

	testPC := c.here()
	var skip int
	hasTest := f.Test != nil
	if hasTest {
		c.compileExpr(f.Test)
		c.emitOp(NOT)
		skip = c.emitJump(B_TRUE)
	}
	c.compileStmt(f.Body)

	updatePC := c.here()
	for _, idx := range bk.continuePatches {
		c.patchJumpTo(idx, updatePC)
	}
	if f.Update != nil {
		c.compileExpr(f.Update)
		c.emitOp(POP)
	}
	back := c.emitJump(B_ALWAYS)
	c.patchJumpTo(back, testPC)
	if hasTest {
		c.patchJump(skip)
	}
	for _, idx := range bk.breakPatches {
		c.patchJump(idx)
	}
	c.targets = c.targets[:len(c.targets)-1]
}

// compileForIn mirrors internal/eval.evalForInStatement's most
// surprising divergence from ordinary member access: a non-Object
// right-hand side (null, undefined, any primitive) yields zero
// iterations rather than a TypeError. TOOBJECT itself always throws
// on a non-Object, so the coercion runs inside a synthetic try/catch
// whose handler simply skips straight to the loop's end instead of
// propagating.
func (c *Compiler) compileForIn(f *ast.ForInStatement) {
	label := c.consumeLabel()
	depthAtEntry := c.blockDepth

	catchNameIdx := c.chunk.addName("")
	tryIdx := c.emitA(S_TRYC, byte(catchNameIdx), 0)
	c.blockDepth++
	c.compileExpr(f.Right)
	c.emitOp(TOOBJECT)
	c.emitB(END, uint16(depthAtEntry))
	c.blockDepth--
	skipAll := c.emitJump(B_ALWAYS)

	c.patchJump(tryIdx)
	c.emitB(END, uint16(depthAtEntry))
	endJump := c.emitJump(B_ALWAYS)

	c.patchJump(skipAll)
	c.emitOp(S_ENUM)
	c.blockDepth++

	bk := &breakable{label: label, isLoop: true, blockDepth: c.blockDepth}
	c.targets = append(c.targets, bk)

	testPC := c.here()
	enumSkip := c.emitJump(B_ENUM)
	c.compileForInBinding(f.Left)
	c.compileStmt(f.Body)
	for _, idx := range bk.continuePatches {
		c.patchJumpTo(idx, testPC)
	}
	back := c.emitJump(B_ALWAYS)
	c.patchJumpTo(back, testPC)
	c.patchJump(enumSkip)

	c.emitB(END, uint16(depthAtEntry))
	c.blockDepth--
	for _, idx := range bk.breakPatches {
		c.patchJump(idx)
	}
	c.targets = c.targets[:len(c.targets)-1]

	c.patchJump(endJump)
}

// compileForInBinding stores the name B_ENUM just pushed into the
// loop's left-hand target, mirroring internal/eval.bindForInTarget.
func (c *Compiler) compileForInBinding(left ast.Node) {
	switch l := left.(type) {
	case *ast.VariableStatement:
		name := l.Declarations[0].Name.Name
		c.emitB(LOC, c.chunk.addName(name))
		c.emitOp(EXCH)
		c.emitOp(PUTVAR)
	case ast.Expression:
		c.compileRef(l)
		c.emitOp(EXCH)
		c.emitOp(PUTVALUE)
		c.emitOp(POP)
	}
}

// compileSwitch emits a dispatch table that evaluates each case's test
// in source order (stopping at the first strict-equals match, exactly
// like internal/eval.evalSwitchStatement) followed by a run of bodies
// starting at the match so fallthrough works, popping the discriminant
// exactly once regardless of which branch matched.
func (c *Compiler) compileSwitch(s *ast.SwitchStatement) {
	label := c.consumeLabel()
	c.compileExpr(s.Discriminant)

	bk := &breakable{label: label, blockDepth: c.blockDepth}
	c.targets = append(c.targets, bk)

	testJump := make([]int, len(s.Cases))
	defaultCase := -1
	for i, cs := range s.Cases {
		if cs.Test == nil {
			defaultCase = i
			testJump[i] = -1
			continue
		}
		c.emitOp(DUP)
		c.compileExpr(cs.Test)
		c.emitOp(SEQ)
		testJump[i] = c.emitJump(B_TRUE)
	}
	fallbackJump := c.emitJump(B_ALWAYS)

	bodyJump := make([]int, len(s.Cases))
	for i := range s.Cases {
		if i == defaultCase {
			c.patchJump(fallbackJump)
		} else if testJump[i] != -1 {
			c.patchJump(testJump[i])
		}
		c.emitOp(POP)
		bodyJump[i] = c.emitJump(B_ALWAYS)
	}
	if defaultCase == -1 {
		c.patchJump(fallbackJump)
		c.emitOp(POP)
		idx := c.emitJump(B_ALWAYS)
		bk.breakPatches = append(bk.breakPatches, idx)
	}

	for i, cs := range s.Cases {
		c.patchJump(bodyJump[i])
		for _, stmt := range cs.Consequent {
			c.compileStmt(stmt)
		}
	}

	for _, idx := range bk.breakPatches {
		c.patchJump(idx)
	}
	c.targets = c.targets[:len(c.targets)-1]
}

func (c *Compiler) compileWith(w *ast.WithStatement) {
	c.compileExpr(w.Object)
	c.emitOp(TOOBJECT)
	c.emitOp(S_WITH)
	depthAtEntry := c.blockDepth
	c.blockDepth++
	c.compileStmt(w.Body)
	c.emitB(END, uint16(depthAtEntry))
	c.blockDepth--
}

func (c *Compiler) compileLabelled(s *ast.LabelledStatement) {
	switch s.Body.(type) {
	case *ast.WhileStatement, *ast.DoWhileStatement, *ast.ForStatement,
		*ast.ForInStatement, *ast.SwitchStatement:
		prev := c.pendingLabel
		c.pendingLabel = s.Label
		c.compileStmt(s.Body)
		c.pendingLabel = prev
	default:
		bk := &breakable{label: s.Label, blockDepth: c.blockDepth}
		c.targets = append(c.targets, bk)
		c.compileStmt(s.Body)
		c.targets = c.targets[:len(c.targets)-1]
		for _, idx := range bk.breakPatches {
			c.patchJump(idx)
		}
	}
}

func (c *Compiler) resolveTarget(label string, needLoop bool) *breakable {
	for i := len(c.targets) - 1; i >= 0; i-- {
		t := c.targets[i]
		if needLoop && !t.isLoop {
			continue
		}
		if label == "" || t.label == label {
			return t
		}
	}
	return nil
}

func (c *Compiler) compileBreak(b *ast.BreakStatement) {
	t := c.resolveTarget(b.Label, false)
	if t == nil {
		return
	}
	c.compileUnwindTo(t.blockDepth)
	idx := c.emitJump(B_ALWAYS)
	t.breakPatches = append(t.breakPatches, idx)
}

func (c *Compiler) compileContinue(cn *ast.ContinueStatement) {
	t := c.resolveTarget(cn.Label, true)
	if t == nil {
		return
	}
	c.compileUnwindTo(t.blockDepth)
	idx := c.emitJump(B_ALWAYS)
	t.continuePatches = append(t.continuePatches, idx)
}

func (c *Compiler) compileReturn(r *ast.ReturnStatement) {
	if r.Argument != nil {
		c.compileExpr(r.Argument)
	} else {
		c.emitB(LITERAL, c.chunk.addLiteral(values.Undefined))
	}
	c.compileUnwindTo(0)
	c.emitA(SETC, byte(values.Return), 0)
	c.emitB(END, 0)
}

func (c *Compiler) compileThrow(t *ast.ThrowStatement) {
	c.compileExpr(t.Argument)
	c.emitOp(THROW)
}

// compileUnwindTo inlines every open finally body between the current
// block depth and targetDepth, in innermost-first order, then emits
// the END that drops any remaining with/enum/try blocks down to
// targetDepth. A no-op if nothing is open — emitting a spurious
// END(targetDepth) here would itself satisfy exec's floor check and
// cut off whatever instructions the caller emits right after (SETC,
// the jump target, ...).
func (c *Compiler) compileUnwindTo(targetDepth int) {
	originalDepth := c.blockDepth
	if originalDepth <= targetDepth {
		return
	}
	originalFinallies := c.finallyStack
	for i := len(c.finallyStack) - 1; i >= 0; i-- {
		fi := c.finallyStack[i]
		if fi.blockDepthAtEntry < targetDepth {
			break
		}
		c.emitB(END, uint16(fi.blockDepthAtEntry))
		c.finallyStack = originalFinallies[:i]
		c.blockDepth = fi.blockDepthAtEntry
		c.compileStatements(fi.body.Statements)
	}
	c.emitB(END, uint16(targetDepth))
	c.blockDepth = originalDepth
	c.finallyStack = originalFinallies
}

// compileTryStatement composes catch and finally as nested
// TryStatements would be: `try B catch(e) C finally F` is `try (try B
// catch(e) C) finally F`.
func (c *Compiler) compileTryStatement(t *ast.TryStatement) {
	if t.Finally != nil {
		c.compileTryFinallyBody(t.Finally, func() {
			if t.Catch != nil {
				c.compileTryCatch(t.Block, t.Catch)
			} else {
				c.compileStatements(t.Block.Statements)
			}
		})
		return
	}
	c.compileTryCatch(t.Block, t.Catch)
}

// compileTryCatch emits S_TRYC, the protected block, then the catch
// body, matching frame.unwindThrow's dynamic redirect contract: the
// runtime pushes a synthetic with-scope (the "shield") binding the
// thrown value under the catch parameter's name before jumping to the
// handler, so the catch body itself just runs as plain statements at
// one block deeper — no S_WITH is ever emitted for it here.
func (c *Compiler) compileTryCatch(block *ast.BlockStatement, catch *ast.CatchClause) {
	depthAtEntry := c.blockDepth
	catchNameIdx := uint16(0)
	if catch != nil {
		catchNameIdx = c.chunk.addName(catch.Param.Name)
	}
	tryIdx := c.emitA(S_TRYC, byte(catchNameIdx), 0)
	c.blockDepth++
	c.compileStatements(block.Statements)
	c.emitB(END, uint16(depthAtEntry))
	c.blockDepth--
	joinJump := c.emitJump(B_ALWAYS)

	c.patchJump(tryIdx)
	if catch != nil {
		c.blockDepth++
		c.compileStatements(catch.Body.Statements)
		c.emitB(END, uint16(depthAtEntry))
		c.blockDepth--
	}
	c.patchJump(joinJump)
}

// compileTryFinallyBody compiles tryBodyFn's statements with finally
// inlined at the natural fall-through exit, plus an independent
// redirect copy reached only via frame.unwindThrow's dynamic search
// when an exception crosses the try body.
func (c *Compiler) compileTryFinallyBody(finally *ast.BlockStatement, tryBodyFn func()) {
	depthAtEntry := c.blockDepth
	tryIdx := c.emitB(S_TRYF, 0)
	c.blockDepth++

	fi := &openFinally{body: finally, blockDepthAtEntry: depthAtEntry}
	c.finallyStack = append(c.finallyStack, fi)
	tryBodyFn()
	c.finallyStack = c.finallyStack[:len(c.finallyStack)-1]

	c.emitB(END, uint16(depthAtEntry))
	c.blockDepth = depthAtEntry
	c.compileStatements(finally.Statements)
	joinJump := c.emitJump(B_ALWAYS)

	c.patchJump(tryIdx)
	c.compileStatements(finally.Statements)
	c.emitB(END, uint16(depthAtEntry))
	c.patchJump(joinJump)
}

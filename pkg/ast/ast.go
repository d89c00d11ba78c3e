package ast

import "github.com/nooga/tsgrammar/pkg/source"

// --- Interfaces ---

// Node is the base interface for all AST nodes. The set of implementations
// is closed: every node embeds BaseNode, which carries the unexported
// marker.
type Node interface {
	Type() string    // ESTree node tag, e.g. "Identifier" or "TSUnionType"
	Base() *BaseNode // Span and location bookkeeping
	node()
}

// Statement represents a statement node in the AST.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node in the AST.
type Expression interface {
	Node
	expressionNode()
}

// Pattern represents a binding target: identifiers and destructuring
// patterns.
type Pattern interface {
	Node
	patternNode()
}

// Annotatable is implemented by binding atoms that accept a trailing
// `: Type` annotation.
type Annotatable interface {
	Pattern
	SetTypeAnnotation(*TSTypeAnnotation)
}

// SourceLocation is the optional line/column span of a node. It is only
// populated when the parser runs with location tracking enabled.
type SourceLocation struct {
	Start source.Position `json:"start" yaml:"start"`
	End   source.Position `json:"end" yaml:"end"`
}

// Extra holds parser annotations that are not part of the node's grammar.
type Extra struct {
	Parenthesized bool `json:"parenthesized" yaml:"parenthesized"`
	ParenStart    int  `json:"parenStart" yaml:"parenStart"`
}

// BaseNode is embedded in every node.
type BaseNode struct {
	Start int             `json:"start"`
	End   int             `json:"end"`
	Loc   *SourceLocation `json:"loc,omitempty"`
	Extra *Extra          `json:"extra,omitempty"`
}

func (b *BaseNode) Base() *BaseNode { return b }
func (b *BaseNode) node()           {}

// Contains reports whether other lies within b's span.
func (b *BaseNode) Contains(other *BaseNode) bool {
	return b.Start <= other.Start && other.End <= b.End
}

// --- Program ---

// Program is the root node of the AST.
type Program struct {
	BaseNode
	Body       []Statement `json:"body"`
	SourceType string      `json:"sourceType"`
}

func (*Program) Type() string { return "Program" }

// --- Statements ---

type ExpressionStatement struct {
	BaseNode
	Expression Expression `json:"expression"`
}

type BlockStatement struct {
	BaseNode
	Body []Statement `json:"body"`
}

type EmptyStatement struct {
	BaseNode
}

// VariableDeclaration is `var`, `let` or `const` followed by declarators.
type VariableDeclaration struct {
	BaseNode
	Kind         string                `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

type VariableDeclarator struct {
	BaseNode
	ID   Pattern    `json:"id"`
	Init Expression `json:"init"`
}

type ReturnStatement struct {
	BaseNode
	Argument Expression `json:"argument"`
}

type IfStatement struct {
	BaseNode
	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate"`
}

type WhileStatement struct {
	BaseNode
	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

type ThrowStatement struct {
	BaseNode
	Argument Expression `json:"argument"`
}

func (*ExpressionStatement) Type() string { return "ExpressionStatement" }
func (*BlockStatement) Type() string      { return "BlockStatement" }
func (*EmptyStatement) Type() string      { return "EmptyStatement" }
func (*VariableDeclaration) Type() string { return "VariableDeclaration" }
func (*VariableDeclarator) Type() string  { return "VariableDeclarator" }
func (*ReturnStatement) Type() string     { return "ReturnStatement" }
func (*IfStatement) Type() string         { return "IfStatement" }
func (*WhileStatement) Type() string      { return "WhileStatement" }
func (*ThrowStatement) Type() string      { return "ThrowStatement" }

func (*ExpressionStatement) statementNode() {}
func (*BlockStatement) statementNode()      {}
func (*EmptyStatement) statementNode()      {}
func (*VariableDeclaration) statementNode() {}
func (*ReturnStatement) statementNode()     {}
func (*IfStatement) statementNode()         {}
func (*WhileStatement) statementNode()      {}
func (*ThrowStatement) statementNode()      {}

// --- Functions ---

// Function holds what function declarations, function expressions and
// arrow functions have in common. Body is a *BlockStatement, or an
// Expression for concise arrow bodies.
type Function struct {
	BaseNode
	ID         *Identifier       `json:"id"`
	Params     []Pattern         `json:"params"`
	Body       Node              `json:"body"`
	ReturnType *TSTypeAnnotation `json:"returnType,omitempty"`
}

type FunctionDeclaration struct {
	Function
}

type FunctionExpression struct {
	Function
}

type ArrowFunctionExpression struct {
	Function
	Expression bool `json:"expression"`
}

func (*FunctionDeclaration) Type() string     { return "FunctionDeclaration" }
func (*FunctionExpression) Type() string      { return "FunctionExpression" }
func (*ArrowFunctionExpression) Type() string { return "ArrowFunctionExpression" }

func (*FunctionDeclaration) statementNode()      {}
func (*FunctionExpression) expressionNode()      {}
func (*ArrowFunctionExpression) expressionNode() {}

// --- Expressions ---

// Identifier is both an expression and a binding pattern. As a binding it
// may carry a type annotation.
type Identifier struct {
	BaseNode
	Name           string            `json:"name"`
	TypeAnnotation *TSTypeAnnotation `json:"typeAnnotation,omitempty"`
}

// RegexLiteral is the pattern/flags pair of a regular expression literal.
type RegexLiteral struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Flags   string `json:"flags" yaml:"flags"`
}

// Literal covers strings, numbers, booleans, null, bigints and regular
// expressions. Value holds string, float64, bool or nil.
type Literal struct {
	BaseNode
	Value  any           `json:"value"`
	Raw    string        `json:"raw"`
	Bigint string        `json:"bigint,omitempty"`
	Regex  *RegexLiteral `json:"regex,omitempty"`
}

type ThisExpression struct {
	BaseNode
}

// ArrayExpression elements are nil for holes.
type ArrayExpression struct {
	BaseNode
	Elements []Expression `json:"elements"`
}

// ObjectExpression properties are *Property or *SpreadElement.
type ObjectExpression struct {
	BaseNode
	Properties []Node `json:"properties"`
}

// Property is an object literal member, or an object pattern member when
// Value is a Pattern.
type Property struct {
	BaseNode
	Key       Expression `json:"key"`
	Value     Node       `json:"value"`
	Kind      string     `json:"kind"`
	Computed  bool       `json:"computed"`
	Shorthand bool       `json:"shorthand"`
	Method    bool       `json:"method"`
}

type SpreadElement struct {
	BaseNode
	Argument Expression `json:"argument"`
}

type UnaryExpression struct {
	BaseNode
	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

type UpdateExpression struct {
	BaseNode
	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

type BinaryExpression struct {
	BaseNode
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

type LogicalExpression struct {
	BaseNode
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

// AssignmentExpression Left is a Pattern for plain `=`, otherwise an
// Identifier or MemberExpression.
type AssignmentExpression struct {
	BaseNode
	Operator string     `json:"operator"`
	Left     Node       `json:"left"`
	Right    Expression `json:"right"`
}

type ConditionalExpression struct {
	BaseNode
	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

type CallExpression struct {
	BaseNode
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

type NewExpression struct {
	BaseNode
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

type MemberExpression struct {
	BaseNode
	Object   Expression `json:"object"`
	Property Expression `json:"property"`
	Computed bool       `json:"computed"`
}

type SequenceExpression struct {
	BaseNode
	Expressions []Expression `json:"expressions"`
}

func (*Identifier) Type() string            { return "Identifier" }
func (*Literal) Type() string               { return "Literal" }
func (*ThisExpression) Type() string        { return "ThisExpression" }
func (*ArrayExpression) Type() string       { return "ArrayExpression" }
func (*ObjectExpression) Type() string      { return "ObjectExpression" }
func (*Property) Type() string              { return "Property" }
func (*SpreadElement) Type() string         { return "SpreadElement" }
func (*UnaryExpression) Type() string       { return "UnaryExpression" }
func (*UpdateExpression) Type() string      { return "UpdateExpression" }
func (*BinaryExpression) Type() string      { return "BinaryExpression" }
func (*LogicalExpression) Type() string     { return "LogicalExpression" }
func (*AssignmentExpression) Type() string  { return "AssignmentExpression" }
func (*ConditionalExpression) Type() string { return "ConditionalExpression" }
func (*CallExpression) Type() string        { return "CallExpression" }
func (*NewExpression) Type() string         { return "NewExpression" }
func (*MemberExpression) Type() string      { return "MemberExpression" }
func (*SequenceExpression) Type() string    { return "SequenceExpression" }

func (*Identifier) expressionNode()            {}
func (*Literal) expressionNode()               {}
func (*ThisExpression) expressionNode()        {}
func (*ArrayExpression) expressionNode()       {}
func (*ObjectExpression) expressionNode()      {}
func (*SpreadElement) expressionNode()         {}
func (*UnaryExpression) expressionNode()       {}
func (*UpdateExpression) expressionNode()      {}
func (*BinaryExpression) expressionNode()      {}
func (*LogicalExpression) expressionNode()     {}
func (*AssignmentExpression) expressionNode()  {}
func (*ConditionalExpression) expressionNode() {}
func (*CallExpression) expressionNode()        {}
func (*NewExpression) expressionNode()         {}
func (*MemberExpression) expressionNode()      {}
func (*SequenceExpression) expressionNode()    {}

// --- Patterns ---

type ArrayPattern struct {
	BaseNode
	Elements       []Pattern         `json:"elements"`
	TypeAnnotation *TSTypeAnnotation `json:"typeAnnotation,omitempty"`
}

// ObjectPattern properties are *Property (with a Pattern value) or
// *RestElement.
type ObjectPattern struct {
	BaseNode
	Properties     []Node            `json:"properties"`
	TypeAnnotation *TSTypeAnnotation `json:"typeAnnotation,omitempty"`
}

type AssignmentPattern struct {
	BaseNode
	Left  Pattern    `json:"left"`
	Right Expression `json:"right"`
}

type RestElement struct {
	BaseNode
	Argument Pattern `json:"argument"`
}

func (*ArrayPattern) Type() string      { return "ArrayPattern" }
func (*ObjectPattern) Type() string     { return "ObjectPattern" }
func (*AssignmentPattern) Type() string { return "AssignmentPattern" }
func (*RestElement) Type() string       { return "RestElement" }

func (*Identifier) patternNode()        {}
func (*ArrayPattern) patternNode()      {}
func (*ObjectPattern) patternNode()     {}
func (*AssignmentPattern) patternNode() {}
func (*RestElement) patternNode()       {}
func (*MemberExpression) patternNode()  {}

func (i *Identifier) SetTypeAnnotation(t *TSTypeAnnotation)    { i.TypeAnnotation = t }
func (a *ArrayPattern) SetTypeAnnotation(t *TSTypeAnnotation)  { a.TypeAnnotation = t }
func (o *ObjectPattern) SetTypeAnnotation(t *TSTypeAnnotation) { o.TypeAnnotation = t }

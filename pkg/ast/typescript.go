package ast

// --- Type annotation nodes ---

// TSType is implemented by every node that can appear in a type position.
type TSType interface {
	Node
	tsTypeNode()
}

// EntityName is an Identifier or a (possibly nested) TSQualifiedName.
type EntityName interface {
	Node
	entityName()
}

// TSTypeElement is a member of a type literal or interface body.
type TSTypeElement interface {
	Node
	tsTypeElement()
}

// TypeArgumentHolder is implemented by type nodes that accept a trailing
// type argument list, e.g. `Foo<T>` or `import("m").Foo<T>`.
type TypeArgumentHolder interface {
	TSType
	SetTypeParameters(*TSTypeParameterInstantiation)
}

// TypeKeywords maps keyword type text to its node tag. The words stay
// ordinary identifiers everywhere else.
var TypeKeywords = map[string]string{
	"any":       "TSAnyKeyword",
	"boolean":   "TSBooleanKeyword",
	"never":     "TSNeverKeyword",
	"null":      "TSNullKeyword",
	"number":    "TSNumberKeyword",
	"object":    "TSObjectKeyword",
	"string":    "TSStringKeyword",
	"symbol":    "TSSymbolKeyword",
	"undefined": "TSUndefinedKeyword",
	"unknown":   "TSUnknownKeyword",
	"void":      "TSVoidKeyword",
}

// TSTypeAnnotation wraps a type at a `:` annotation site.
type TSTypeAnnotation struct {
	BaseNode
	TypeAnnotation TSType `json:"typeAnnotation"`
}

// TSKeywordType is a leaf whose tag is fixed by the keyword text.
type TSKeywordType struct {
	BaseNode
	Keyword string `json:"-"`
}

type TSTypeReference struct {
	BaseNode
	TypeName       EntityName                    `json:"typeName"`
	TypeParameters *TSTypeParameterInstantiation `json:"typeParameters,omitempty"`
}

// TSQualifiedName is a left-leaning chain: A.B.C is ((A.B).C).
type TSQualifiedName struct {
	BaseNode
	Left  EntityName  `json:"left"`
	Right *Identifier `json:"right"`
}

type TSLiteralType struct {
	BaseNode
	Literal *Literal `json:"literal"`
}

// TSTupleType elements are types, *TSOptionalType or *TSRestType.
type TSTupleType struct {
	BaseNode
	ElementTypes []TSType `json:"elementTypes"`
}

type TSOptionalType struct {
	BaseNode
	TypeAnnotation TSType `json:"typeAnnotation"`
}

type TSRestType struct {
	BaseNode
	TypeAnnotation TSType `json:"typeAnnotation"`
}

type TSArrayType struct {
	BaseNode
	ElementType TSType `json:"elementType"`
}

type TSIndexedAccessType struct {
	BaseNode
	ObjectType TSType `json:"objectType"`
	IndexType  TSType `json:"indexType"`
}

type TSParenthesizedType struct {
	BaseNode
	TypeAnnotation TSType `json:"typeAnnotation"`
}

// TSUnionType is flat: A | B | C is one node with three types.
type TSUnionType struct {
	BaseNode
	Types []TSType `json:"types"`
}

// TSIntersectionType is flat like TSUnionType.
type TSIntersectionType struct {
	BaseNode
	Types []TSType `json:"types"`
}

type TSConditionalType struct {
	BaseNode
	CheckType   TSType `json:"checkType"`
	ExtendsType TSType `json:"extendsType"`
	TrueType    TSType `json:"trueType"`
	FalseType   TSType `json:"falseType"`
}

type TSInferType struct {
	BaseNode
	TypeParameter *TSTypeParameter `json:"typeParameter"`
}

type TSImportType struct {
	BaseNode
	IsTypeOf       bool                          `json:"isTypeOf"`
	Parameter      *TSLiteralType                `json:"parameter"`
	Qualifier      EntityName                    `json:"qualifier,omitempty"`
	TypeParameters *TSTypeParameterInstantiation `json:"typeParameters,omitempty"`
}

type TSConstructorType struct {
	BaseNode
	TypeParameters *TSTypeParameterDeclaration `json:"typeParameters,omitempty"`
	Parameters     []Pattern                   `json:"parameters"`
	TypeAnnotation *TSTypeAnnotation           `json:"typeAnnotation"`
}

func (*TSTypeAnnotation) Type() string    { return "TSTypeAnnotation" }
func (k *TSKeywordType) Type() string     { return TypeKeywords[k.Keyword] }
func (*TSTypeReference) Type() string     { return "TSTypeReference" }
func (*TSQualifiedName) Type() string     { return "TSQualifiedName" }
func (*TSLiteralType) Type() string       { return "TSLiteralType" }
func (*TSTupleType) Type() string         { return "TSTupleType" }
func (*TSOptionalType) Type() string      { return "TSOptionalType" }
func (*TSRestType) Type() string          { return "TSRestType" }
func (*TSArrayType) Type() string         { return "TSArrayType" }
func (*TSIndexedAccessType) Type() string { return "TSIndexedAccessType" }
func (*TSParenthesizedType) Type() string { return "TSParenthesizedType" }
func (*TSUnionType) Type() string         { return "TSUnionType" }
func (*TSIntersectionType) Type() string  { return "TSIntersectionType" }
func (*TSConditionalType) Type() string   { return "TSConditionalType" }
func (*TSInferType) Type() string         { return "TSInferType" }
func (*TSImportType) Type() string        { return "TSImportType" }
func (*TSConstructorType) Type() string   { return "TSConstructorType" }

func (*TSKeywordType) tsTypeNode()       {}
func (*TSTypeReference) tsTypeNode()     {}
func (*TSLiteralType) tsTypeNode()       {}
func (*TSTupleType) tsTypeNode()         {}
func (*TSOptionalType) tsTypeNode()      {}
func (*TSRestType) tsTypeNode()          {}
func (*TSArrayType) tsTypeNode()         {}
func (*TSIndexedAccessType) tsTypeNode() {}
func (*TSParenthesizedType) tsTypeNode() {}
func (*TSUnionType) tsTypeNode()         {}
func (*TSIntersectionType) tsTypeNode()  {}
func (*TSConditionalType) tsTypeNode()   {}
func (*TSInferType) tsTypeNode()         {}
func (*TSImportType) tsTypeNode()        {}
func (*TSConstructorType) tsTypeNode()   {}
func (*TSTypeLiteral) tsTypeNode()       {}

func (*Identifier) entityName()      {}
func (*TSQualifiedName) entityName() {}

func (r *TSTypeReference) SetTypeParameters(p *TSTypeParameterInstantiation) { r.TypeParameters = p }
func (i *TSImportType) SetTypeParameters(p *TSTypeParameterInstantiation)    { i.TypeParameters = p }

// --- Object-like types and members ---

type TSTypeLiteral struct {
	BaseNode
	Members []TSTypeElement `json:"members"`
}

type TSInterfaceBody struct {
	BaseNode
	Body []TSTypeElement `json:"body"`
}

type TSPropertySignature struct {
	BaseNode
	Key            *Identifier `json:"key"`
	TypeAnnotation TSType      `json:"typeAnnotation,omitempty"`
}

type TSMethodSignature struct {
	BaseNode
	Key            *Identifier                 `json:"key"`
	TypeParameters *TSTypeParameterDeclaration `json:"typeParameters,omitempty"`
	Parameters     []Pattern                   `json:"parameters"`
	TypeAnnotation TSType                      `json:"typeAnnotation,omitempty"`
}

type TSConstructSignatureDeclaration struct {
	BaseNode
	TypeParameters *TSTypeParameterDeclaration `json:"typeParameters,omitempty"`
	Parameters     []Pattern                   `json:"parameters"`
	TypeAnnotation *TSTypeAnnotation           `json:"typeAnnotation,omitempty"`
}

func (*TSTypeLiteral) Type() string                   { return "TSTypeLiteral" }
func (*TSInterfaceBody) Type() string                 { return "TSInterfaceBody" }
func (*TSPropertySignature) Type() string             { return "TSPropertySignature" }
func (*TSMethodSignature) Type() string               { return "TSMethodSignature" }
func (*TSConstructSignatureDeclaration) Type() string { return "TSConstructSignatureDeclaration" }

func (*TSPropertySignature) tsTypeElement()             {}
func (*TSMethodSignature) tsTypeElement()               {}
func (*TSConstructSignatureDeclaration) tsTypeElement() {}

// --- Generics ---

type TSTypeParameter struct {
	BaseNode
	Name       string `json:"name"`
	Constraint TSType `json:"constraint,omitempty"`
	Default    TSType `json:"default,omitempty"`
}

type TSTypeParameterDeclaration struct {
	BaseNode
	Params []*TSTypeParameter `json:"params"`
}

type TSTypeParameterInstantiation struct {
	BaseNode
	Params []TSType `json:"params"`
}

func (*TSTypeParameter) Type() string              { return "TSTypeParameter" }
func (*TSTypeParameterDeclaration) Type() string   { return "TSTypeParameterDeclaration" }
func (*TSTypeParameterInstantiation) Type() string { return "TSTypeParameterInstantiation" }

// --- Declarations and expressions ---

type TSInterfaceDeclaration struct {
	BaseNode
	ID             *Identifier                      `json:"id"`
	TypeParameters *TSTypeParameterDeclaration      `json:"typeParameters,omitempty"`
	Heritage       []*TSExpressionWithTypeArguments `json:"heritage,omitempty"`
	Body           *TSInterfaceBody                 `json:"body"`
}

type TSTypeAliasDeclaration struct {
	BaseNode
	ID             *Identifier                 `json:"id"`
	TypeParameters *TSTypeParameterDeclaration `json:"typeParameters,omitempty"`
	TypeAnnotation TSType                      `json:"typeAnnotation"`
}

type TSExpressionWithTypeArguments struct {
	BaseNode
	Expr           EntityName                    `json:"expr"`
	TypeParameters *TSTypeParameterInstantiation `json:"typeParameters,omitempty"`
}

// TSAsExpression chains to the left: x as A as B is ((x as A) as B).
type TSAsExpression struct {
	BaseNode
	Expression     Expression `json:"expression"`
	TypeAnnotation TSType     `json:"typeAnnotation"`
}

func (*TSInterfaceDeclaration) Type() string        { return "TSInterfaceDeclaration" }
func (*TSTypeAliasDeclaration) Type() string        { return "TSTypeAliasDeclaration" }
func (*TSExpressionWithTypeArguments) Type() string { return "TSExpressionWithTypeArguments" }
func (*TSAsExpression) Type() string                { return "TSAsExpression" }

func (*TSInterfaceDeclaration) statementNode() {}
func (*TSTypeAliasDeclaration) statementNode() {}
func (*TSAsExpression) expressionNode()        {}

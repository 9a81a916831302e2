// Package errs provides the structured error type used across every
// component of the SCIM core: schema validation, the provider contract,
// the PATCH engine, and the SCIM server's dispatch layer.
package errs

import (
	"fmt"
	"net/http"
	"time"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error codes for structured SCIM error handling. These map 1:1 onto the
// taxonomy in the specification's error-handling design: each code carries
// a fixed HTTP status and, where RFC 7644 §3.12 defines one, a scimType.
const (
	// Validation errors (schema-driven rejection, §4.1)
	CodeMissingSchemas            = "MISSING_SCHEMAS"
	CodeEmptySchemas              = "EMPTY_SCHEMAS"
	CodeInvalidSchemaURI          = "INVALID_SCHEMA_URI"
	CodeUnknownSchemaURI          = "UNKNOWN_SCHEMA_URI"
	CodeDuplicateSchemaURI        = "DUPLICATE_SCHEMA_URI"
	CodeMissingID                 = "MISSING_ID"
	CodeEmptyID                   = "EMPTY_ID"
	CodeInvalidIDFormat           = "INVALID_ID_FORMAT"
	CodeInvalidMetaStructure      = "INVALID_META_STRUCTURE"
	CodeMissingResourceType       = "MISSING_RESOURCE_TYPE"
	CodeInvalidResourceType       = "INVALID_RESOURCE_TYPE"
	CodeInvalidCreatedDateTime    = "INVALID_CREATED_DATETIME"
	CodeInvalidDataType           = "INVALID_DATA_TYPE"
	CodeMissingRequiredAttribute  = "MISSING_REQUIRED_ATTRIBUTE"
	CodeInvalidBooleanValue       = "INVALID_BOOLEAN_VALUE"
	CodeInvalidDateTimeFormat     = "INVALID_DATETIME_FORMAT"
	CodeInvalidReferenceURI       = "INVALID_REFERENCE_URI"
	CodeUnknownAttributeForSchema = "UNKNOWN_ATTRIBUTE_FOR_SCHEMA"
	CodeMultiplePrimaryValues     = "MULTIPLE_PRIMARY_VALUES"
	CodeInvalidSubAttributeType   = "INVALID_SUB_ATTRIBUTE_TYPE"
	CodeUnknownSubAttribute       = "UNKNOWN_SUB_ATTRIBUTE"
	CodeMalformedComplexStructure = "MALFORMED_COMPLEX_STRUCTURE"
	CodeSingleValueForMultiValued = "SINGLE_VALUE_FOR_MULTIVALUED"
	CodeArrayForSingleValued      = "ARRAY_FOR_SINGLE_VALUED"
	CodeInvalidCanonicalValue     = "INVALID_CANONICAL_VALUE"
	CodeClientProvidedID          = "CLIENT_PROVIDED_ID"

	// Resource-lifecycle errors
	CodeNotFound           = "NOT_FOUND"
	CodeVersionMismatch    = "VERSION_MISMATCH"
	CodeDuplicateAttribute = "DUPLICATE_ATTRIBUTE"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeLimitExceeded      = "LIMIT_EXCEEDED"
	CodeUnsupportedType    = "UNSUPPORTED_TYPE"
	CodeUnsupportedOp      = "UNSUPPORTED_OPERATION"
	CodeInvalidPath        = "INVALID_PATH"
	CodeMutability         = "MUTABILITY"
	CodeTenantRequired     = "TENANT_REQUIRED"
	CodeReservedTenantID   = "RESERVED_TENANT_ID"

	// General
	CodeInvalidInput  = "INVALID_INPUT"
	CodeRequiredField = "REQUIRED_FIELD"
	CodeInternalError = "INTERNAL_ERROR"
	CodeNotImplemented = "NOT_IMPLEMENTED"
)

// ScimType is the RFC 7644 §3.12 detail error type, attached to the
// error-envelope JSON. Empty when the kind has no defined scimType.
type ScimType string

const (
	ScimTypeNone          ScimType = ""
	ScimTypeUniqueness    ScimType = "uniqueness"
	ScimTypeMutability    ScimType = "mutability"
	ScimTypeInvalidSyntax ScimType = "invalidSyntax"
	ScimTypeInvalidPath   ScimType = "invalidPath"
	ScimTypeInvalidValue  ScimType = "invalidValue"
	ScimTypeInvalidFilter ScimType = "invalidFilter"
	ScimTypeNoTarget      ScimType = "noTarget"
	ScimTypeSensitive     ScimType = "sensitive"
	ScimTypeTooMany       ScimType = "tooMany"
)

// =============================================================================
// SCIM ERROR
// =============================================================================

// ScimError is the structured error type returned by every component in
// this module. It carries a stable machine-readable Code, an HTTP status,
// an optional scimType per RFC 7644 §3.12, and free-form debug Context.
type ScimError struct {
	// Code is the SCIM core error code (e.g. "NOT_FOUND").
	Code string `json:"code"`

	// ScimType is the RFC 7644 §3.12 detail error type, when defined.
	ScimType ScimType `json:"scimType,omitempty"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// HTTPStatus is the HTTP status code a transport should map this to.
	HTTPStatus int `json:"-"`

	// Err is the underlying error, if any.
	Err error `json:"-"`

	// Context carries structured debug detail (attribute name, expected
	// version, tenant id, ...).
	Context map[string]any `json:"context,omitempty"`

	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *ScimError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap/errors.As.
func (e *ScimError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is. Two ScimErrors are equal for errors.Is purposes
// iff their codes match; this lets callers write errors.Is(err, errs.ErrNotFound).
func (e *ScimError) Is(target error) bool {
	t, ok := target.(*ScimError)
	if !ok {
		return false
	}

	return e.Code != "" && e.Code == t.Code
}

// WithContext attaches a key/value pair of debug context to the error.
func (e *ScimError) WithContext(key string, value any) *ScimError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}

	e.Context[key] = value

	return e
}

// WithError attaches an underlying cause.
func (e *ScimError) WithError(err error) *ScimError {
	e.Err = err

	return e
}

// ErrorEnvelope is the RFC 7644 §6.4 wire format for SCIM errors.
type ErrorEnvelope struct {
	Schemas  []string `json:"schemas"`
	Status   string   `json:"status"`
	ScimType string   `json:"scimType,omitempty"`
	Detail   string   `json:"detail"`
}

// ToErrorEnvelope renders the RFC 7644 §6.4 error envelope JSON shape.
func (e *ScimError) ToErrorEnvelope() *ErrorEnvelope {
	status := e.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	return &ErrorEnvelope{
		Schemas:  []string{"urn:ietf:params:scim:api:messages:2.0:Error"},
		Status:   fmt.Sprintf("%d", status),
		ScimType: string(e.ScimType),
		Detail:   e.Message,
	}
}

// New creates a new ScimError with no scimType.
func New(code, message string, httpStatus int) *ScimError {
	return &ScimError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now().UTC(),
	}
}

// NewTyped creates a new ScimError carrying an RFC 7644 §3.12 scimType.
func NewTyped(code string, scimType ScimType, message string, httpStatus int) *ScimError {
	e := New(code, message, httpStatus)
	e.ScimType = scimType

	return e
}

// Wrap creates a new ScimError wrapping an underlying cause.
func Wrap(err error, code, message string, httpStatus int) *ScimError {
	return New(code, message, httpStatus).WithError(err)
}

// =============================================================================
// CONSTRUCTORS — VALIDATION ERRORS (§4.1, §7)
// =============================================================================

func MissingSchemas() *ScimError {
	return NewTyped(CodeMissingSchemas, ScimTypeInvalidValue, "resource is missing the \"schemas\" attribute", http.StatusBadRequest)
}

func EmptySchemas() *ScimError {
	return NewTyped(CodeEmptySchemas, ScimTypeInvalidValue, "\"schemas\" must not be empty", http.StatusBadRequest)
}

func InvalidSchemaURI(uri string) *ScimError {
	return NewTyped(CodeInvalidSchemaURI, ScimTypeInvalidValue, "schema URI is not a valid URN", http.StatusBadRequest).
		WithContext("uri", uri)
}

func UnknownSchemaURI(uri string) *ScimError {
	return NewTyped(CodeUnknownSchemaURI, ScimTypeInvalidValue, "schema URI is not registered", http.StatusBadRequest).
		WithContext("uri", uri)
}

func DuplicateSchemaURI(uri string) *ScimError {
	return NewTyped(CodeDuplicateSchemaURI, ScimTypeInvalidValue, "schema URI appears more than once", http.StatusBadRequest).
		WithContext("uri", uri)
}

func MissingID() *ScimError {
	return NewTyped(CodeMissingID, ScimTypeInvalidValue, "resource is missing \"id\"", http.StatusBadRequest)
}

func EmptyID() *ScimError {
	return NewTyped(CodeEmptyID, ScimTypeInvalidValue, "\"id\" must not be empty", http.StatusBadRequest)
}

func InvalidIDFormat(id string) *ScimError {
	return NewTyped(CodeInvalidIDFormat, ScimTypeInvalidValue, "\"id\" has an invalid format", http.StatusBadRequest).
		WithContext("id", id)
}

func ClientProvidedID() *ScimError {
	return NewTyped(CodeClientProvidedID, ScimTypeInvalidValue, "\"id\" must not be supplied on create", http.StatusBadRequest)
}

func InvalidMetaStructure(reason string) *ScimError {
	return NewTyped(CodeInvalidMetaStructure, ScimTypeInvalidValue, "\"meta\" is malformed: "+reason, http.StatusBadRequest)
}

func MissingResourceType() *ScimError {
	return NewTyped(CodeMissingResourceType, ScimTypeInvalidValue, "meta.resourceType is required", http.StatusBadRequest)
}

func InvalidResourceType(got, want string) *ScimError {
	return NewTyped(CodeInvalidResourceType, ScimTypeInvalidValue, "meta.resourceType does not match resource type", http.StatusBadRequest).
		WithContext("got", got).WithContext("want", want)
}

func InvalidCreatedDateTime(field, value string) *ScimError {
	return NewTyped(CodeInvalidCreatedDateTime, ScimTypeInvalidValue, "meta timestamp is not RFC 3339", http.StatusBadRequest).
		WithContext("field", field).WithContext("value", value)
}

func InvalidDataType(attribute, expected string) *ScimError {
	return NewTyped(CodeInvalidDataType, ScimTypeInvalidValue, "attribute has the wrong data type", http.StatusBadRequest).
		WithContext("attribute", attribute).WithContext("expected", expected)
}

func MissingRequiredAttribute(schemaURI, attribute string) *ScimError {
	return NewTyped(CodeMissingRequiredAttribute, ScimTypeInvalidValue, "required attribute is missing", http.StatusBadRequest).
		WithContext("schema", schemaURI).WithContext("attribute", attribute)
}

func InvalidBooleanValue(attribute string) *ScimError {
	return NewTyped(CodeInvalidBooleanValue, ScimTypeInvalidValue, "attribute must be a boolean", http.StatusBadRequest).
		WithContext("attribute", attribute)
}

func InvalidDateTimeFormat(attribute, value string) *ScimError {
	return NewTyped(CodeInvalidDateTimeFormat, ScimTypeInvalidValue, "attribute is not RFC 3339", http.StatusBadRequest).
		WithContext("attribute", attribute).WithContext("value", value)
}

func InvalidReferenceURI(attribute, value string) *ScimError {
	return NewTyped(CodeInvalidReferenceURI, ScimTypeInvalidValue, "reference attribute is not an absolute URI", http.StatusBadRequest).
		WithContext("attribute", attribute).WithContext("value", value)
}

func UnknownAttributeForSchema(attribute string) *ScimError {
	return NewTyped(CodeUnknownAttributeForSchema, ScimTypeInvalidValue, "attribute is not declared by any schema in \"schemas\"", http.StatusBadRequest).
		WithContext("attribute", attribute)
}

func MultiplePrimaryValues(attribute string) *ScimError {
	return NewTyped(CodeMultiplePrimaryValues, ScimTypeInvalidValue, "more than one element has primary=true", http.StatusBadRequest).
		WithContext("attribute", attribute)
}

func InvalidSubAttributeType(attribute, sub string) *ScimError {
	return NewTyped(CodeInvalidSubAttributeType, ScimTypeInvalidValue, "sub-attribute has the wrong data type", http.StatusBadRequest).
		WithContext("attribute", attribute).WithContext("subAttribute", sub)
}

func UnknownSubAttribute(attribute, sub string) *ScimError {
	return NewTyped(CodeUnknownSubAttribute, ScimTypeInvalidValue, "sub-attribute is not declared", http.StatusBadRequest).
		WithContext("attribute", attribute).WithContext("subAttribute", sub)
}

func MalformedComplexStructure(attribute string) *ScimError {
	return NewTyped(CodeMalformedComplexStructure, ScimTypeInvalidValue, "complex attribute is not a JSON object", http.StatusBadRequest).
		WithContext("attribute", attribute)
}

func SingleValueForMultiValued(attribute string) *ScimError {
	return NewTyped(CodeSingleValueForMultiValued, ScimTypeInvalidValue, "multi-valued attribute must be a JSON array", http.StatusBadRequest).
		WithContext("attribute", attribute)
}

func ArrayForSingleValued(attribute string) *ScimError {
	return NewTyped(CodeArrayForSingleValued, ScimTypeInvalidValue, "single-valued attribute must not be a JSON array", http.StatusBadRequest).
		WithContext("attribute", attribute)
}

func InvalidCanonicalValue(attribute, value string) *ScimError {
	return NewTyped(CodeInvalidCanonicalValue, ScimTypeInvalidValue, "value is not among the attribute's canonical values", http.StatusBadRequest).
		WithContext("attribute", attribute).WithContext("value", value)
}

// =============================================================================
// CONSTRUCTORS — PROVIDER / LIFECYCLE ERRORS (§7)
// =============================================================================

func NotFound(resourceType, id string) *ScimError {
	return New(CodeNotFound, "resource not found", http.StatusNotFound).
		WithContext("resourceType", resourceType).WithContext("id", id)
}

func VersionMismatch(expected, current string) *ScimError {
	return New(CodeVersionMismatch, "version does not match the current resource version", http.StatusPreconditionFailed).
		WithContext("expected", expected).WithContext("current", current)
}

func DuplicateAttribute(attribute, value string) *ScimError {
	return NewTyped(CodeDuplicateAttribute, ScimTypeUniqueness, "attribute value is already in use", http.StatusConflict).
		WithContext("attribute", attribute).WithContext("value", value)
}

func PermissionDenied(operation string) *ScimError {
	return New(CodePermissionDenied, "operation not permitted for this tenant", http.StatusForbidden).
		WithContext("operation", operation)
}

func LimitExceeded(resourceType string, limit int) *ScimError {
	return NewTyped(CodeLimitExceeded, ScimTypeTooMany, "resource limit exceeded for tenant", http.StatusRequestEntityTooLarge).
		WithContext("resourceType", resourceType).WithContext("limit", limit)
}

func UnsupportedType(resourceType string) *ScimError {
	return New(CodeUnsupportedType, "resource type is not registered", http.StatusBadRequest).
		WithContext("resourceType", resourceType)
}

func UnsupportedOperation(resourceType, operation string) *ScimError {
	return New(CodeUnsupportedOp, "operation is not allowed for this resource type", http.StatusBadRequest).
		WithContext("resourceType", resourceType).WithContext("operation", operation)
}

func InvalidPath(path, reason string) *ScimError {
	return NewTyped(CodeInvalidPath, ScimTypeInvalidPath, "PATCH path is invalid: "+reason, http.StatusBadRequest).
		WithContext("path", path)
}

func Mutability(attribute string) *ScimError {
	return NewTyped(CodeMutability, ScimTypeMutability, "attribute is read-only or immutable", http.StatusBadRequest).
		WithContext("attribute", attribute)
}

func TenantRequired() *ScimError {
	return New(CodeTenantRequired, "a tenant context is required for this server", http.StatusBadRequest)
}

func ReservedTenantID(tenantID string) *ScimError {
	return New(CodeReservedTenantID, "tenant id is reserved for single-tenant mode", http.StatusBadRequest).
		WithContext("tenantId", tenantID)
}

// =============================================================================
// CONSTRUCTORS — GENERAL
// =============================================================================

func InvalidInput(field, reason string) *ScimError {
	return NewTyped(CodeInvalidInput, ScimTypeInvalidValue, "invalid input", http.StatusBadRequest).
		WithContext("field", field).WithContext("reason", reason)
}

func RequiredField(field string) *ScimError {
	return NewTyped(CodeRequiredField, ScimTypeInvalidValue, "field is required", http.StatusBadRequest).
		WithContext("field", field)
}

func InternalError(err error) *ScimError {
	return Wrap(err, CodeInternalError, "internal error", http.StatusInternalServerError)
}

func NotImplemented(feature string) *ScimError {
	return New(CodeNotImplemented, "not implemented", http.StatusNotImplemented).
		WithContext("feature", feature)
}

// =============================================================================
// SENTINEL ERRORS (for use with errors.Is)
// =============================================================================

var (
	ErrNotFound         = &ScimError{Code: CodeNotFound}
	ErrVersionMismatch  = &ScimError{Code: CodeVersionMismatch}
	ErrDuplicateAttr    = &ScimError{Code: CodeDuplicateAttribute}
	ErrPermissionDenied = &ScimError{Code: CodePermissionDenied}
	ErrLimitExceeded    = &ScimError{Code: CodeLimitExceeded}
	ErrUnsupportedType  = &ScimError{Code: CodeUnsupportedType}
	ErrUnsupportedOp    = &ScimError{Code: CodeUnsupportedOp}
	ErrInvalidPath      = &ScimError{Code: CodeInvalidPath}
	ErrMutability       = &ScimError{Code: CodeMutability}
	ErrTenantRequired   = &ScimError{Code: CodeTenantRequired}
)

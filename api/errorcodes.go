package api

const (
	CategoryDatabase     = ErrorCategory("Database")
	CategoryUser         = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryForbidden    = ErrorCategory("Forbidden")
	CategoryUnauthorized = ErrorCategory("Unauthorized")
	CategoryNotFound     = ErrorCategory("NotFound")
	CategoryInternal     = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
)

const (
	// General

	ErrorCreateFailure         = ErrorKey("ErrorCreateFailure")
	ErrorDeleteFailure         = ErrorKey("ErrorDeleteFailure")
	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorForeignKeyViolation   = ErrorKey("ErrorForeignKeyViolation")
	ErrorInvalidDate           = ErrorKey("ErrorInvalidDate")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorNoRows                = ErrorKey("ErrorNoRows")
	ErrorNotAuthorized         = ErrorKey("ErrorNotAuthorized")
	ErrorQueryFailure          = ErrorKey("ErrorQueryFailure")
	ErrorRouteNotFound         = ErrorKey("ErrorRouteNotFound")
	ErrorSaveFailure           = ErrorKey("ErrorSaveFailure")
	ErrorUniqueKeyViolation    = ErrorKey("ErrorUniqueKeyViolation")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorUpdateFailure         = ErrorKey("ErrorUpdateFailure")
	ErrorValidation            = ErrorKey("ErrorValidation")

	// Authentication
	ErrorAuthProvidersCallback = ErrorKey("ErrorAuthProvidersCallback")
	ErrorAuthProvidersLogout   = ErrorKey("ErrorAuthProvidersLogout")
	ErrorCreatingAccessToken   = ErrorKey("ErrorCreatingAccessToken")
	ErrorDeletingAccessToken   = ErrorKey("ErrorDeletingAccessToken")
	ErrorFindingAccessToken    = ErrorKey("ErrorFindingAccessToken")
	ErrorGettingAuthURL        = ErrorKey("ErrorGettingAuthURL")
	ErrorLoadingAuthProvider   = ErrorKey("ErrorLoadingAuthProvider")
	ErrorMissingAuthEmail      = ErrorKey("ErrorMissingAuthEmail")
	ErrorMissingSessionKey     = ErrorKey("ErrorMissingSessionKey")
	ErrorWithAuthUser          = ErrorKey("ErrorWithAuthUser")

	// Authorization
	ErrorInvalidResourceID = ErrorKey("ErrorInvalidResourceID")
	ErrorResourceNotFound  = ErrorKey("ErrorResourceNotFound")

	// File
	ErrorReceivingFile     = ErrorKey("ErrorReceivingFile")
	ErrorStoreFileTooLarge = ErrorKey("ErrorStoreFileTooLarge")
	ErrorUnableToReadFile  = ErrorKey("ErrorUnableToReadFile")
	ErrorUnableToStoreFile = ErrorKey("ErrorUnableToStoreFile")
	ErrorUnableToListFiles = ErrorKey("ErrorUnableToListFiles")

	// Unit
	ErrorUnitHasChildren  = ErrorKey("ErrorUnitHasChildren")
	ErrorUnitHasFunds     = ErrorKey("ErrorUnitHasFunds")
	ErrorEmployeeNotFound = ErrorKey("ErrorEmployeeNotFound")

	// TravelRequest
	ErrorTravelRequestClosed = ErrorKey("ErrorTravelRequestClosed")

	// Report
	ErrorReportRender = ErrorKey("ErrorReportRender")

	// Import
	ErrorImportKind      = ErrorKey("ErrorImportKind")
	ErrorImportBadHeader = ErrorKey("ErrorImportBadHeader")
	ErrorImportRow       = ErrorKey("ErrorImportRow")
)

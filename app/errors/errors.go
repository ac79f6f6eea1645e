package errors

type Error interface {
	error
	ApplicationError() Error
}

// Configuration marks errors which prevent the application from
// starting, e.g., a missing environment variable.
type Configuration interface {
	Error
	ConfigurationError() Configuration
}

type configurationWrap struct {
	innerErr error
}

func (e *configurationWrap) Error() string {
	if e != nil && e.innerErr != nil {
		return e.innerErr.Error()
	}
	return "configuration error"
}
func (e *configurationWrap) Unwrap() error {
	if e != nil {
		return e.innerErr
	}
	return nil
}

func (e *configurationWrap) ApplicationError() Error           { return e }
func (e *configurationWrap) ConfigurationError() Configuration { return e }

func NewConfiguration(innerErr error) Configuration {
	return &configurationWrap{innerErr}
}

var _ Configuration = &configurationWrap{}

package constants

import "github.com/go-playground/validator/v10"

type ctxKey string

const (
	PoolKey      ctxKey = "pool"
	TxKey        ctxKey = "tx"
	LoggerKey    ctxKey = "logger"
	ParamsKey    ctxKey = "params"
	UserIDKey    ctxKey = "user_id"
	AppKey       ctxKey = "app"
	RequestStart ctxKey = "request_start"
)

var Validate = validator.New()

package bootstrap

import (
	"quoteflow/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	JWTModule,
	DeliveryModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)

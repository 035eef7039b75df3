package middleware

import (
	"brokerbook/models"

	"github.com/gin-gonic/gin"
)

// BrokerOnly and ClientOnly are the two role gates the routes use.
func BrokerOnly() gin.HandlerFunc { return RequireRole(models.RoleBroker) }

func ClientOnly() gin.HandlerFunc { return RequireRole(models.RoleClient) }

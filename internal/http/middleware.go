package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fander/internal/domain"
)

const ctxUserKey = "currentUser"

// bearerToken вынимает токен из заголовка Authorization; пустая строка, если его нет
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && h[:7] == "Bearer " {
		return h[7:]
	}
	return h
}

// authenticate разрешает токен в пользователя; при неудаче пишет 401 и прерывает запрос
func (s *Server) authenticate(c *gin.Context) (*domain.User, bool) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return nil, false
	}
	user, err := s.auth.ResolveToken(c, token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}
	return user, true
}

// requireUser пропускает только запросы с валидным токеном
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.authenticate(c)
		if !ok {
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// requireAdmin как requireUser, плюс 403 для не-админов
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.authenticate(c)
		if !ok {
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const (
	VisitorIDKey      = "visitor_id"
	visitorCookieName = "storefront_visitor"
)

// Visitors identifies the browser across screens with a signed and encrypted
// cookie. It is not authentication: the id only scopes navigation context.
type Visitors struct {
	sc     *securecookie.SecureCookie
	secure bool
}

func NewVisitors(hashKey, blockKey []byte, secure bool) *Visitors {
	return &Visitors{sc: securecookie.New(hashKey, blockKey), secure: secure}
}

func (v *Visitors) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := v.read(c.Request)
		if !ok {
			id = uuid.NewString()
			if err := v.write(c.Writer, id); err != nil {
				_ = c.Error(err)
			}
		}
		c.Set(VisitorIDKey, id)
		c.Next()
	}
}

func (v *Visitors) read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(visitorCookieName)
	if err != nil {
		return "", false
	}
	value := map[string]string{}
	if err := v.sc.Decode(visitorCookieName, ck.Value, &value); err != nil {
		return "", false
	}
	id := value["vid"]
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (v *Visitors) write(w http.ResponseWriter, id string) error {
	encoded, err := v.sc.Encode(visitorCookieName, map[string]string{"vid": id})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   v.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// VisitorID returns the id set by the Visitors middleware.
func VisitorID(c *gin.Context) string {
	return c.GetString(VisitorIDKey)
}

package cache

// Prefix namespaces keys in the shared cache so relay keys never collide
// with anything else living in the same Redis database.
type Prefix string

// Idempotency holds one key per accepted Idempotency-Key header value.
const Idempotency Prefix = "idempotency"

// Key returns the namespaced key for id, e.g. "idempotency:abc".
func (p Prefix) Key(id string) string {
	return string(p) + ":" + id
}

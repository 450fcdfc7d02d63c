// Package memory implementa los puertos de persistencia en memoria del proceso.
// Cada store protege su estado con un RWMutex y entrega copias, nunca punteros internos.
package memory

// paginate recorta items a [offset, offset+limit). limit <= 0 = sin límite.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

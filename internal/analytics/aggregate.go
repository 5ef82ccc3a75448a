package analytics

import "github.com/shopspring/decimal"

// Aggregation é um mapa ordenado chave -> soma acumulada.
// Keys devolve a ordem da primeira ocorrência; quem precisa de outra ordem ordena explicitamente.
type Aggregation[K comparable] struct {
	order  []K
	values map[K]decimal.Decimal
}

func NewAggregation[K comparable]() *Aggregation[K] {
	return &Aggregation[K]{values: make(map[K]decimal.Decimal)}
}

// Aggregate agrupa items por keyFn somando valueFn. Entrada vazia gera agregação vazia.
func Aggregate[T any, K comparable](items []T, keyFn func(T) K, valueFn func(T) decimal.Decimal) *Aggregation[K] {
	agg := NewAggregation[K]()
	for _, item := range items {
		agg.Add(keyFn(item), valueFn(item))
	}
	return agg
}

// Add soma value ao acumulado de key
func (a *Aggregation[K]) Add(key K, value decimal.Decimal) {
	current, exists := a.values[key]
	if !exists {
		a.order = append(a.order, key)
	}
	a.values[key] = current.Add(value)
}

// Get retorna o acumulado de key e se a chave existe
func (a *Aggregation[K]) Get(key K) (decimal.Decimal, bool) {
	value, ok := a.values[key]
	return value, ok
}

func (a *Aggregation[K]) Len() int {
	return len(a.order)
}

// Keys retorna uma cópia das chaves na ordem de primeira ocorrência
func (a *Aggregation[K]) Keys() []K {
	keys := make([]K, len(a.order))
	copy(keys, a.order)
	return keys
}

// Each percorre as chaves na ordem de primeira ocorrência
func (a *Aggregation[K]) Each(fn func(key K, value decimal.Decimal)) {
	for _, key := range a.order {
		fn(key, a.values[key])
	}
}

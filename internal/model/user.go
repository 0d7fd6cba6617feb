package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// CartSize is the number of item slots every cart carries.
const CartSize = 300

type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
	CartData Cart      `json:"cartData"`
	Date     time.Time `json:"date"`
}

// Cart maps an item slot to its quantity.
type Cart map[int]int

// NewCart returns a cart with every slot set to zero.
func NewCart() Cart {
	c := make(Cart, CartSize)
	for i := 0; i < CartSize; i++ {
		c[i] = 0
	}
	return c
}

func ValidSlot(slot int) bool {
	return slot >= 0 && slot < CartSize
}

// MarshalJSON encodes slots as string keys ("0".."299").
func (c Cart) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(c))
	for k, v := range c {
		m[strconv.Itoa(k)] = v
	}
	return json.Marshal(m)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(Cart, len(m))
	for k, v := range m {
		slot, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("invalid cart slot %q: %w", k, err)
		}
		out[slot] = v
	}
	*c = out
	return nil
}

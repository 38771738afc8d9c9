package repository

import "fmt"

func errNotFound(id string) error {
	return fmt.Errorf("repository: user %q not found", id)
}

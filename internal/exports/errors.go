package exports

import (
	"errors"
	"fmt"
)

var ErrWritingCSV = errors.New("error writing csv")

func ErrorWritingCSV(orderID string, cause error) error {
	return fmt.Errorf("%w: order=%s cause=%v", ErrWritingCSV, orderID, cause)
}

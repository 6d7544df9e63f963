package orders

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML list of order records, for rendering without a table
func LoadFile(path string) ([]*Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrorReadingOrdersFile(path, err)
	}
	return ParseYAML(data)
}

// ParseYAML converts a YAML list of order records
func ParseYAML(data []byte) ([]*Order, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, ErrorUnmarshallingOrder(err)
	}

	orders := make([]*Order, 0, len(records))
	for _, record := range records {
		order, err := record.Order()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Algorithm is the numeric tag of a scheduling policy, as written in result lines
type Algorithm int

const (
	AlgorithmFCFS     Algorithm = 1
	AlgorithmSJF      Algorithm = 2
	AlgorithmPriority Algorithm = 3
)

// Algorithms lists every policy in output order
var Algorithms = []Algorithm{AlgorithmFCFS, AlgorithmSJF, AlgorithmPriority}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmFCFS:
		return "FCFS"
	case AlgorithmSJF:
		return "SJF"
	case AlgorithmPriority:
		return "Priority"
	default:
		return "Algorithm(" + strconv.Itoa(int(a)) + ")"
	}
}

// Valid reports whether a is one of the known tags
func (a Algorithm) Valid() bool {
	return a >= AlgorithmFCFS && a <= AlgorithmPriority
}

// ParseAlgorithm accepts either the numeric tag or the policy name, case insensitive
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if a := Algorithm(n); a.Valid() {
			return a, nil
		}
		return 0, fmt.Errorf("unknown algorithm tag %d", n)
	}
	switch strings.ToLower(s) {
	case "fcfs":
		return AlgorithmFCFS, nil
	case "sjf":
		return AlgorithmSJF, nil
	case "priority":
		return AlgorithmPriority, nil
	}
	return 0, fmt.Errorf("unknown algorithm %q", s)
}

// ParseAlgorithms parses every entry of values, each possibly a comma separated list
func ParseAlgorithms(values []string) ([]Algorithm, error) {
	var out []Algorithm
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if strings.TrimSpace(item) == "" {
				continue
			}
			a, err := ParseAlgorithm(item)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(out, a) {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/Gthulhu/schedsim/domain"
)

type MerkleNode struct {
	Hash  string
	Left  *MerkleNode
	Right *MerkleNode
}

func HashSHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func HashStringSHA256Hex(value string) string {
	return HashSHA256Hex([]byte(value))
}

// BuildMerkleTree pairs leaf hashes level by level. An odd node is paired with itself.
func BuildMerkleTree(leafHashes []string) *MerkleNode {
	if len(leafHashes) == 0 {
		return &MerkleNode{Hash: HashStringSHA256Hex("")}
	}

	nodes := make([]*MerkleNode, 0, len(leafHashes))
	for _, hash := range leafHashes {
		nodes = append(nodes, &MerkleNode{Hash: hash})
	}

	for len(nodes) > 1 {
		nextLevel := make([]*MerkleNode, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			left := nodes[i]
			right := left
			if i+1 < len(nodes) {
				right = nodes[i+1]
			}
			nextLevel = append(nextLevel, &MerkleNode{
				Hash:  hashMerklePair(left.Hash, right.Hash),
				Left:  left,
				Right: right,
			})
		}
		nodes = nextLevel
	}

	return nodes[0]
}

func hashMerklePair(leftHash, rightHash string) string {
	leftBytes, errLeft := hex.DecodeString(leftHash)
	rightBytes, errRight := hex.DecodeString(rightHash)
	if errLeft != nil || errRight != nil {
		return HashStringSHA256Hex(leftHash + rightHash)
	}
	merged := make([]byte, 0, len(leftBytes)+len(rightBytes))
	merged = append(merged, leftBytes...)
	merged = append(merged, rightBytes...)
	return HashSHA256Hex(merged)
}

// SpecLine renders a descriptor in the burst:priority:arrival:queue input format
func SpecLine(spec domain.ProcessSpec) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(spec.BurstTime))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(spec.Priority))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(spec.ArrivalTime))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(spec.QueueID))
	return b.String()
}

// Fingerprint identifies a process set by the merkle root of its input lines.
// Two sets share a fingerprint only if they hold the same descriptors in the same order.
func Fingerprint(specs []domain.ProcessSpec) string {
	leaves := make([]string, 0, len(specs))
	for i, spec := range specs {
		leaves = append(leaves, HashStringSHA256Hex(strconv.Itoa(i)+"|"+SpecLine(spec)))
	}
	return BuildMerkleTree(leaves).Hash
}

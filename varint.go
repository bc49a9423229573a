package multiaddr

import (
	"fmt"
	"math"

	"github.com/multiformats/go-varint"
)

// CodeToVarint 将协议代码转换为 varint 编码的字节
//
// 代码必须为非负且不超过 int32 范围。
func CodeToVarint(code int) ([]byte, error) {
	if code < 0 || code > math.MaxInt32 {
		return nil, fmt.Errorf("invalid protocol code: %d", code)
	}
	return varint.ToUvarint(uint64(code)), nil
}

// ReadVarintCode 从字节流中读取 varint 编码的协议代码
// 返回：(code, bytes_read, error)
//
// 截断（最后一个可用字节仍带延续位）或非最小编码的输入会返回错误。
func ReadVarintCode(buf []byte) (int, int, error) {
	code, n, err := varint.FromUvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	if code > math.MaxInt32 {
		// 协议代码只允许 32 位
		return 0, 0, varint.ErrOverflow
	}
	return int(code), n, nil
}

// readVarintLength 从字节流中读取变长段的长度前缀
// 返回：(length, bytes_read, error)
func readVarintLength(buf []byte) (int, int, error) {
	length, n, err := varint.FromUvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	if length > math.MaxInt32 {
		return 0, 0, fmt.Errorf("length prefix out of range: %d", length)
	}
	return int(length), n, nil
}

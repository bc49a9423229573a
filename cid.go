package multiaddr

import (
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	b58 "github.com/mr-tron/base58/base58"
	"github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"
)

// minMultihashLen 多哈希的最小可用长度（1 字节代码 + 1 字节长度 + 3 字节摘要余量）
const minMultihashLen = 5

// P2P/CID Transcoder
//
// 值在两种字符串形式之间自动转换：
//
//   - 旧式：base58 编码的裸多哈希（"Qm..." 或 identity 哈希的 "1..."）
//   - 新式：multibase 编码的 CIDv1（"bafz..."）
//
// 编码时旧式字符串会升级为 CIDv1(libp2p-key) 的二进制形式，
// 解码时携带 libp2p-key 代码的 CIDv1 会降级回旧式 base58 字符串。
// 该转换有意不保证双射：两种字符串形式映射到同一二进制形式。
var TranscoderP2P = newCIDTranscoder(cid.Libp2pKey)

// TranscoderCID 通用 CID Transcoder
//
// 与 TranscoderP2P 的区别在于不要求特定的 codec 类型，
// 解码 CIDv1 时总是渲染为新式 multibase 字符串。
var TranscoderCID = newCIDTranscoder(0)

// cidTranscoder expectedCodec 非零时要求 CID 的 codec 标签与之相等
type cidTranscoder struct {
	expectedCodec uint64
}

func newCIDTranscoder(expectedCodec uint64) Transcoder {
	return &cidTranscoder{expectedCodec: expectedCodec}
}

func (t *cidTranscoder) StringToBytes(s string) ([]byte, error) {
	if isCIDv0String(s) {
		// 旧式 base58 多哈希
		m, err := b58.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse base58 multihash %q: %w", s, err)
		}
		if len(m) < minMultihashLen {
			return nil, fmt.Errorf("invalid multihash %q: too short", s)
		}
		mhash, err := mh.Cast(m)
		if err != nil {
			return nil, fmt.Errorf("invalid multihash %q: %w", s, err)
		}
		if t.expectedCodec != 0 {
			// 升级为 CIDv1 二进制形式
			return cid.NewCidV1(t.expectedCodec, mhash).Bytes(), nil
		}
		return m, nil
	}

	// 新式 multibase CID
	c, err := cid.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cid %q: %w", s, err)
	}
	if err := t.checkCodec(c); err != nil {
		return nil, err
	}
	if len(c.Hash()) < minMultihashLen {
		return nil, fmt.Errorf("invalid multihash in cid %q: too short", s)
	}
	return c.Bytes(), nil
}

func (t *cidTranscoder) BytesToString(b []byte) (string, error) {
	if isCIDv0Bytes(b) {
		// 裸多哈希，渲染为旧式 base58 字符串
		if len(b) < minMultihashLen {
			return "", fmt.Errorf("invalid multihash: too short (%d bytes)", len(b))
		}
		if _, err := mh.Cast(b); err != nil {
			return "", fmt.Errorf("invalid multihash: %w", err)
		}
		return b58.Encode(b), nil
	}

	c, err := cid.Cast(b)
	if err != nil {
		return "", fmt.Errorf("failed to parse cid bytes: %w", err)
	}
	if err := t.checkCodec(c); err != nil {
		return "", err
	}
	if t.expectedCodec != 0 {
		// 字符串表示降级为旧式 base58 多哈希
		return b58.Encode(c.Hash()), nil
	}
	return c.StringOfBase(multibase.Base32)
}

func (t *cidTranscoder) ValidateBytes(b []byte) error {
	_, err := t.BytesToString(b)
	return err
}

func (t *cidTranscoder) checkCodec(c cid.Cid) error {
	if t.expectedCodec != 0 && c.Type() != t.expectedCodec {
		return fmt.Errorf("cid codec 0x%x is not allowed here, expected 0x%x (libp2p-key)", c.Type(), t.expectedCodec)
	}
	return nil
}

// isCIDv0String 判断字符串是否为旧式 base58 多哈希表示
//
// 参考 libp2p peer-id 规范："Qm" 开头的 46 字符 sha2-256 形式，
// 或 "1" 开头的 identity 哈希形式。
func isCIDv0String(s string) bool {
	if len(s) == 46 && strings.HasPrefix(s, "Qm") {
		return true
	}
	return strings.HasPrefix(s, "1")
}

// isCIDv0Bytes 判断缓冲区是否为裸多哈希（而不是带版本前缀的 CID）
func isCIDv0Bytes(b []byte) bool {
	if len(b) == 34 && b[0] == 0x12 && b[1] == 0x20 {
		// sha2-256 多哈希
		return true
	}
	if len(b) >= 2 && b[0] == 0x00 && int(b[1]) == len(b)-2 {
		// identity 多哈希
		return true
	}
	return false
}

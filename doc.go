// Package multiaddr 提供多地址（Multiaddr）的实现
//
// Multiaddr 是一种自描述、可组合的网络地址格式，支持多种传输协议
// 和地址类型。本包实现字符串形式与紧凑二进制形式之间的双向转换。
//
// # 基本用法
//
//	// 创建多地址
//	ma, err := multiaddr.NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 获取字符串表示
//	fmt.Println(ma.String()) // /ip4/127.0.0.1/tcp/4001
//
//	// 获取二进制表示
//	bytes := ma.Bytes()
//
//	// 封装另一个地址
//	p2p, _ := multiaddr.NewMultiaddr("/p2p/QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N")
//	full := ma.Encapsulate(p2p)
//
// # 地址格式
//
// 字符串格式：
//
//	/ip4/127.0.0.1/tcp/4001
//	/ip6/::1/tcp/8080
//	/ip4/192.168.1.1/udp/4001/quic-v1
//	/ip4/1.2.3.4/tcp/4001/p2p/QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N
//	/dns/example.com/tcp/443/wss
//
// 二进制格式是各段的直接拼接，无整体长度前缀：
//
//	[varint:protocol_code][段数据]...
//
// 段数据按协议分为固定长度（ip4、tcp 等）、varint 长度前缀的变长
// 数据（dns、p2p 等）和无数据标记（http、tls 等）三类。
//
// # 协议注册表
//
// 内置协议通过 DefaultRegistry 查询，代码与
// multiformats/multicodec 对齐：
// https://github.com/multiformats/multicodec/blob/master/table.csv
//
// DefaultRegistry 构建后即锁定，可被并发查询。需要注册自定义协议
// 时通过 Copy 获取未锁定快照：
//
//	reg := multiaddr.DefaultRegistry.Copy(true)
//	err := reg.Add(multiaddr.Protocol{Name: "my-proto", Code: 0x300, Size: 16})
//	reg.Lock()
//
// # P2P 地址与 CID
//
// p2p 协议的值在两种字符串形式之间自动转换：旧式 base58 多哈希
// （"Qm..."、"12D3KooW..."）与新式 multibase CIDv1（"bafz..."）。
// 二进制形式统一存储为 CIDv1(libp2p-key)，因此该转换不是双射：
// 解码产生的规范字符串形式不保证等于编码前的输入。
//
// # 错误处理
//
// 字符串解析失败返回 *StringParseError，二进制解析失败返回
// *BinaryParseError；底层编解码器的具体错误可通过 errors.Unwrap
// 获取。转换是全有或全无的，失败时不返回部分结果。
//
// # 与标准网络类型转换
//
//	// 从 net.TCPAddr 创建
//	tcpAddr := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4001}
//	ma, err := multiaddr.FromTCPAddr(tcpAddr)
//
//	// 转换为 net.TCPAddr
//	ma, _ := multiaddr.NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
//	tcpAddr, err := ma.ToTCPAddr()
//
// # 工具函数
//
//	// 分离传输地址和 P2P 组件
//	transport, peerID := multiaddr.Split(ma)
//
//	// 合并传输地址和 P2P 组件
//	full := multiaddr.Join(transport, peerID)
//
//	// 过滤地址
//	tcpAddrs := multiaddr.FilterAddrs(addrs, func(ma multiaddr.Multiaddr) bool {
//	    return multiaddr.HasProtocol(ma, multiaddr.P_TCP)
//	})
//
//	// 去重
//	unique := multiaddr.UniqueAddrs(addrs)
package multiaddr

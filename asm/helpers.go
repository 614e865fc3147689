package asm

// Func identifies a kernel helper function by its stable numeric id, the way
// a BPF `call` instruction's immediate field does. The values below must
// match the Linux kernel's enum bpf_func_id exactly; this is a partial
// listing covering the helpers the DSL packages in this module invoke.
type Func int32

const (
	FuncMapLookupElem     Func = 1
	FuncMapUpdateElem     Func = 2
	FuncMapDeleteElem     Func = 3
	FuncProbeRead         Func = 4
	FuncKtimeGetNs        Func = 5
	FuncTracePrintk       Func = 6
	FuncGetPrandomU32     Func = 7
	FuncGetSmpProcessorID Func = 8
	FuncSKBStoreBytes     Func = 9
	FuncL3CsumReplace     Func = 10
	FuncL4CsumReplace     Func = 11
	FuncTailCall          Func = 12
	FuncCloneRedirect     Func = 13
	FuncGetCurrentPidTgid Func = 14
	FuncGetCurrentUidGid  Func = 15
	FuncGetCurrentComm    Func = 16
	FuncGetCgroupClassid  Func = 17
	FuncSKBVlanPush       Func = 18
	FuncSKBVlanPop        Func = 19
	FuncSKBGetTunnelKey   Func = 20
	FuncSKBSetTunnelKey   Func = 21
	FuncPerfEventRead     Func = 22
	FuncRedirect          Func = 23
	FuncGetRouteRealm     Func = 24
	FuncPerfEventOutput   Func = 25
	FuncSKBLoadBytes      Func = 26
	FuncGetStackid        Func = 27
	FuncCsumDiff          Func = 28
	FuncSKBGetTunnelOpt   Func = 29
	FuncSKBSetTunnelOpt   Func = 30
	FuncSKBChangeProto    Func = 31
	FuncSKBChangeType     Func = 32
	FuncSKBUnderCgroup    Func = 33
	FuncGetHashRecalc     Func = 34
	FuncGetCurrentTask    Func = 35
	FuncProbeWriteUser    Func = 36
	FuncCurrentTaskUnderCgroup Func = 37
	FuncSKBChangeTail     Func = 38
	FuncSKBPullData       Func = 39
	FuncCsumUpdate        Func = 40
	FuncSetHashInvalid    Func = 41
	FuncGetNumaNodeID     Func = 42
	FuncSKBChangeHead     Func = 43
	FuncXDPAdjustHead     Func = 44
	FuncProbeReadStr      Func = 45
	FuncGetSocketCookie   Func = 46
	FuncGetSocketUID      Func = 47
	FuncSetHash           Func = 48
	FuncSetsockopt        Func = 49
	FuncSKBAdjustRoom     Func = 50
	FuncRedirectMap       Func = 51
	FuncSKRedirectMap     Func = 52
	FuncSockMapUpdate     Func = 53
	FuncXDPAdjustMeta     Func = 54
	FuncPerfEventReadValue Func = 55
	FuncPerfProgReadValue Func = 56
	FuncGetsockopt        Func = 57
	FuncOverrideReturn    Func = 58
	FuncSockOpsCbFlagsSet Func = 59
	FuncMsgRedirectMap    Func = 60
	FuncMsgApplyBytes     Func = 61
	FuncMsgCorkBytes      Func = 62
	FuncMsgPullData       Func = 63
	FuncBind              Func = 64
	FuncXDPAdjustTail     Func = 65
	FuncSKBGetXfrmState   Func = 66
	FuncGetStack          Func = 67
	FuncSKBLoadBytesRelative Func = 68
	FuncFibLookup         Func = 69
	FuncSockHashUpdate    Func = 70
	FuncMsgRedirectHash   Func = 71
	FuncSKRedirectHash    Func = 72
	FuncLwtPushEncap      Func = 73
	FuncLwtSeg6StoreBytes Func = 74
	FuncLwtSeg6AdjustSrh  Func = 75
	FuncLwtSeg6Action     Func = 76
	FuncRcRepeat          Func = 77
	FuncRcKeydown         Func = 78
	FuncSkbCgroupID       Func = 79
	FuncGetCurrentCgroupID Func = 80
	FuncGetLocalStorage   Func = 81
	FuncSkSelectReuseport Func = 82
	FuncSkbAncestorCgroupID Func = 83
	FuncSkLookupTCP       Func = 84
	FuncSkLookupUDP       Func = 85
	FuncSkRelease         Func = 86
	FuncMapPushElem       Func = 87
	FuncMapPopElem        Func = 88
	FuncMapPeekElem       Func = 89
	FuncMsgPushData       Func = 90
	FuncMsgPopData        Func = 91
	FuncRcPointerRel      Func = 92
	FuncSpinLock          Func = 93
	FuncSpinUnlock        Func = 94
	FuncSkFullsock        Func = 95
	FuncTcpSock           Func = 96
	FuncSkbEcnSetCe       Func = 97
	FuncGetListenerSock   Func = 98
	FuncSkcLookupTCP      Func = 99
	FuncTcpCheckSyncookie Func = 100
	FuncSysctlGetName     Func = 101
	FuncSysctlGetCurrentValue Func = 102
	FuncSysctlGetNewValue Func = 103
	FuncSysctlSetNewValue Func = 104
	FuncStrtol            Func = 105
	FuncStrtoul           Func = 106
	FuncSkStorageGet      Func = 107
	FuncSkStorageDelete   Func = 108
	FuncSendSignal        Func = 109
	FuncTcpGenSyncookie   Func = 110
	FuncSkbOutput         Func = 111
	FuncProbeReadUser     Func = 112
	FuncProbeReadKernel   Func = 113
	FuncProbeReadUserStr  Func = 114
	FuncProbeReadKernelStr Func = 115
	FuncTcpSendAck        Func = 116
	FuncSendSignalThread  Func = 117
	FuncJiffies64         Func = 118
	FuncReadBranchRecords Func = 119
	FuncGetNsCurrentPidTgid Func = 120
	FuncXdpOutput         Func = 121
	FuncGetNetnsCookie    Func = 122
	FuncGetCurrentAncestorCgroupID Func = 123
	FuncSkAssign          Func = 124
	FuncKtimeGetBootNs    Func = 125
	FuncSeqPrintf         Func = 126
	FuncSeqWrite          Func = 127
	FuncSkCgroupID        Func = 128
	FuncSkAncestorCgroupID Func = 129
	FuncRingbufOutput     Func = 130
	FuncRingbufReserve    Func = 131
	FuncRingbufSubmit     Func = 132
	FuncRingbufDiscard    Func = 133
	FuncRingbufQuery      Func = 134
	FuncCsumLevel         Func = 135
	FuncSkcToTcp6Sock     Func = 136
	FuncSkcToTcpSock      Func = 137
	FuncSkcToTcpTimewaitSock Func = 138
	FuncSkcToTcpRequestSock Func = 139
	FuncSkcToUdp6Sock     Func = 140
	FuncGetTaskStack      Func = 141
	FuncLoadHdrOpt        Func = 142
	FuncStoreHdrOpt       Func = 143
	FuncReserveHdrOpt     Func = 144
	FuncInodeStorageGet   Func = 145
	FuncInodeStorageDelete Func = 146
	FuncDPath             Func = 147
	FuncCopyFromUser      Func = 148
	FuncSnprintfBtf       Func = 149
	FuncSeqPrintfBtf      Func = 150
	FuncBprmOptsSet       Func = 159
	FuncKtimeGetCoarseNs  Func = 160
	FuncImaInodeHash      Func = 161
	FuncSockFromFile      Func = 162
	FuncCheckMtu          Func = 163
	FuncForEachMapElem    Func = 164
	FuncSnprintf          Func = 165
)

// TailCallFuncID is the helper id of bpf_tail_call, which jumps into a
// program held in a BPF_PROG_ARRAY map.
const TailCallFuncID = FuncTailCall

func (f Func) String() string {
	if s, ok := funcNames[f]; ok {
		return s
	}
	return "bpf_helper#unknown"
}

var funcNames = map[Func]string{
	FuncMapLookupElem:     "bpf_map_lookup_elem",
	FuncMapUpdateElem:     "bpf_map_update_elem",
	FuncMapDeleteElem:     "bpf_map_delete_elem",
	FuncKtimeGetNs:        "bpf_ktime_get_ns",
	FuncGetSmpProcessorID: "bpf_get_smp_processor_id",
	FuncSKBStoreBytes:     "bpf_skb_store_bytes",
	FuncL3CsumReplace:     "bpf_l3_csum_replace",
	FuncL4CsumReplace:     "bpf_l4_csum_replace",
	FuncTailCall:          "bpf_tail_call",
	FuncCloneRedirect:     "bpf_clone_redirect",
	FuncGetCurrentPidTgid: "bpf_get_current_pid_tgid",
	FuncGetCurrentUidGid:  "bpf_get_current_uid_gid",
	FuncGetCurrentComm:    "bpf_get_current_comm",
	FuncRedirect:          "bpf_redirect",
	FuncGetCurrentTask:    "bpf_get_current_task",
	FuncSKBLoadBytes:      "bpf_skb_load_bytes",
	FuncGetStackid:        "bpf_get_stackid",
	FuncPerfEventOutput:   "bpf_perf_event_output",
	FuncSKBChangeTail:     "bpf_skb_change_tail",
	FuncXDPAdjustHead:     "bpf_xdp_adjust_head",
	FuncProbeReadStr:      "bpf_probe_read_str",
	FuncRedirectMap:       "bpf_redirect_map",
	FuncSKRedirectMap:     "bpf_sk_redirect_map",
	FuncSockMapUpdate:     "bpf_sock_map_update",
	FuncXDPAdjustMeta:     "bpf_xdp_adjust_meta",
	FuncMsgRedirectMap:    "bpf_msg_redirect_map",
	FuncXDPAdjustTail:     "bpf_xdp_adjust_tail",
	FuncSockHashUpdate:    "bpf_sock_hash_update",
	FuncMsgRedirectHash:   "bpf_msg_redirect_hash",
	FuncSKRedirectHash:    "bpf_sk_redirect_hash",
	FuncSkLookupTCP:       "bpf_sk_lookup_tcp",
	FuncSkLookupUDP:       "bpf_sk_lookup_udp",
	FuncSkRelease:         "bpf_sk_release",
	FuncProbeReadKernel:   "bpf_probe_read_kernel",
	FuncSkAssign:          "bpf_sk_assign",
	FuncSeqPrintf:         "bpf_seq_printf",
	FuncSeqWrite:          "bpf_seq_write",
	FuncRingbufOutput:     "bpf_ringbuf_output",
	FuncRingbufReserve:    "bpf_ringbuf_reserve",
	FuncRingbufSubmit:     "bpf_ringbuf_submit",
	FuncRingbufDiscard:    "bpf_ringbuf_discard",
}

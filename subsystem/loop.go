// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package subsystem

import (
	"context"
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/stmtdist/config"
	"github.com/luxfi/stmtdist/gossip"
	"github.com/luxfi/stmtdist/head"
	"github.com/luxfi/stmtdist/ingress"
	"github.com/luxfi/stmtdist/metrics"
	"github.com/luxfi/stmtdist/network"
	"github.com/luxfi/stmtdist/statement"
)

// chanBacklog bounds the signal/message channels so a stalled loop applies
// backpressure rather than growing without bound; the overseer is expected
// to apply its own upstream flow control per spec §5.
const chanBacklog = 256

// Loop is the event loop (C7). All mutable state -- peers, active heads,
// our view -- is owned exclusively by the goroutine running Run; there is
// no lock because there is no concurrent access, matching the
// single-logical-task concurrency model of spec §5.
type Loop struct {
	log        log.Logger
	params     config.Parameters
	metrics    *metrics.Metrics
	bridge     network.Bridge
	runtime    network.RuntimeAPI
	backing    network.CandidateBacking
	validators network.ValidatorConnector

	peers   *peerTable
	heads   *head.Store
	ourView statement.View

	gossip  *gossip.Engine
	ingress *ingress.Handler

	signalCh   chan Signal
	messageCh  chan Message
	shutdownCh chan struct{}
}

// New returns a Loop wired to its external collaborators. validatorConnector
// is optional (nil is valid) and, when set, is notified of peer connect/
// disconnect events the same way the teacher's ChainRouter forwards them to
// validators.Connector. The gossip and ingress engines are constructed
// internally so they share the loop's own peer table and active-head store.
func New(
	l log.Logger,
	params config.Parameters,
	m *metrics.Metrics,
	bridge network.Bridge,
	runtime network.RuntimeAPI,
	backing network.CandidateBacking,
	validatorConnector network.ValidatorConnector,
) *Loop {
	loop := &Loop{
		log:        l,
		params:     params,
		metrics:    m,
		bridge:     bridge,
		runtime:    runtime,
		backing:    backing,
		validators: validatorConnector,
		peers:      newPeerTable(),
		heads:      head.NewStore(),
		signalCh:   make(chan Signal, chanBacklog),
		messageCh:  make(chan Message, chanBacklog),
		shutdownCh: make(chan struct{}),
	}
	loop.gossip = gossip.New(l, m, bridge, loop.peers, loop.heads, params.ProtocolID)
	loop.ingress = ingress.New(l, params, m, bridge, runtime, backing, loop.gossip, loop.peers, loop.heads, loop.currentView)
	return loop
}

func (l *Loop) currentView() statement.View {
	return l.ourView
}

// HandleMessage implements network.MessageHandler: it is the registered
// protocol adapter's entry point for inbound wire bytes from peer.
func (l *Loop) HandleMessage(ctx context.Context, peer statement.NodeID, bytes []byte) error {
	select {
	case l.messageCh <- NetworkBridgeUpdate{Event: PeerMessage{Peer: peer, Bytes: bytes}}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Signal enqueues an overseer signal for processing by Run.
func (l *Loop) Signal(ctx context.Context, s Signal) error {
	select {
	case l.signalCh <- s:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send enqueues an overseer message for processing by Run.
func (l *Loop) Send(ctx context.Context, m Message) error {
	select {
	case l.messageCh <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop requests Run exit at its next opportunity.
func (l *Loop) Stop() {
	close(l.shutdownCh)
}

// Run registers the wire protocol and drives the event loop until ctx is
// canceled, Stop is called, or a Conclude signal arrives.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.bridge.RegisterEventProducer(l.params.ProtocolID, l); err != nil {
		return fmt.Errorf("subsystem: register event producer: %w", err)
	}
	l.log.Info("statement distribution event loop started", "protocolID", l.params.ProtocolID)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.shutdownCh:
			return nil
		case sig := <-l.signalCh:
			if conclude, err := l.handleSignal(ctx, sig); conclude || err != nil {
				return err
			}
		case msg := <-l.messageCh:
			if err := l.handleMessage(ctx, msg); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) handleSignal(ctx context.Context, sig Signal) (conclude bool, err error) {
	switch s := sig.(type) {
	case StartWork:
		return false, l.startWork(ctx, s.RelayParent)
	case StopWork:
		// Documented no-op; cleanup happens on the next OurViewChange.
		return false, nil
	case Conclude:
		l.log.Info("statement distribution event loop concluding")
		return true, nil
	default:
		return false, nil
	}
}

func (l *Loop) startWork(ctx context.Context, relayParent statement.Hash) error {
	if _, ok := l.heads.Get(relayParent); ok {
		return nil
	}

	validators, err := l.runtime.Validators(ctx, relayParent)
	if err != nil {
		return fmt.Errorf("subsystem: fetch validators for %s: %w", relayParent, err)
	}
	signingCtx, err := l.runtime.SigningContext(ctx, relayParent)
	if err != nil {
		return fmt.Errorf("subsystem: fetch signing context for %s: %w", relayParent, err)
	}

	l.heads.Insert(relayParent, head.NewActiveHeadData(validators, signingCtx.SessionIndex, l.params.VCThreshold))
	if l.metrics != nil {
		l.metrics.ActiveHeads.Set(float64(l.heads.Len()))
	}
	return nil
}

func (l *Loop) handleMessage(ctx context.Context, msg Message) error {
	switch m := msg.(type) {
	case Share:
		return l.gossip.CirculateStatementAndDependents(ctx, m.RelayParent, m.Statement)
	case NetworkBridgeUpdate:
		return l.handleNetworkBridgeUpdate(ctx, m.Event)
	default:
		return nil
	}
}

func (l *Loop) handleNetworkBridgeUpdate(ctx context.Context, ev NetworkBridgeEvent) error {
	switch e := ev.(type) {
	case PeerConnected:
		l.peers.Insert(e.Peer)
		if l.metrics != nil {
			l.metrics.ConnectedPeers.Set(float64(l.peers.Len()))
		}
		if l.validators != nil {
			if err := l.validators.Connected(ctx, e.Peer, e.NodeVersion); err != nil {
				return fmt.Errorf("subsystem: notify validator connector of connected peer %s: %w", e.Peer, err)
			}
		}
		return nil
	case PeerDisconnected:
		l.peers.Remove(e.Peer)
		if l.metrics != nil {
			l.metrics.ConnectedPeers.Set(float64(l.peers.Len()))
		}
		if l.validators != nil {
			if err := l.validators.Disconnected(ctx, e.Peer); err != nil {
				return fmt.Errorf("subsystem: notify validator connector of disconnected peer %s: %w", e.Peer, err)
			}
		}
		return nil
	case PeerMessage:
		return l.ingress.HandleIncomingMessage(ctx, e.Peer, e.Bytes)
	case PeerViewChange:
		return l.updatePeerView(ctx, e.Peer, e.NewView)
	case OurViewChange:
		return l.updateOurView(e.NewView)
	default:
		return nil
	}
}

func (l *Loop) updatePeerView(ctx context.Context, peer statement.NodeID, newView statement.View) error {
	data, ok := l.peers.Get(peer)
	if !ok {
		return nil
	}
	added := data.UpdateView(newView)
	for _, relayParent := range added {
		if _, ok := l.heads.Get(relayParent); !ok {
			continue
		}
		data.InsertParent(relayParent)
		if err := l.gossip.SendStatements(ctx, peer, relayParent); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) updateOurView(newView statement.View) error {
	l.heads.RetainOnly(newView)
	for _, added := range l.ourView.Added(newView) {
		if _, ok := l.heads.Get(added); !ok {
			l.log.Warn("new relay parent in our view has no active head; StartWork was not issued first", "relayParent", added)
		}
	}
	l.ourView = newView
	if l.metrics != nil {
		l.metrics.ActiveHeads.Set(float64(l.heads.Len()))
	}
	return nil
}
